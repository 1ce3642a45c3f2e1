package cmd

import (
	"encoding/json"
	"log"
	"os"

	"github.com/phux/urlsentry/app"

	"github.com/spf13/cobra"
)

var (
	serverURL  string
	urlFile    string
	rateLimit  float64
	outputFile string
)

var scanCmd = &cobra.Command{
	Use:   "scan [url...]",
	Short: "submit URLs to a running urlsentry server",
	Long:  `submit URLs given as arguments and/or listed in --urlFile to a running urlsentry server and report the verdicts.`,
	Run: func(cmd *cobra.Command, args []string) {
		err := app.ValidateServerURL(serverURL)
		if err != nil {
			log.Fatalf("Error: %s\n", err)
		}

		urls := append([]string{}, args...)
		if urlFile != "" {
			list, err := app.LoadURLsFromFile(urlFile)
			if err != nil {
				log.Fatalf("Error: %s\n", err)
			}
			urls = append(urls, list.URLs...)
		}

		client := app.NewClient(serverURL, rateLimit)
		err = client.ScanAll(cmd.Context(), urls)
		if err != nil {
			log.Fatalf("Error: %s\n", err)
		}

		if outputFile == "" {
			for _, finding := range client.Results.Findings {
				log.Println(finding)
			}
		} else {
			findings, err := json.MarshalIndent(client.Results.Findings, "", "  ")
			if err != nil {
				log.Fatalln(err)
			}

			err = os.WriteFile(outputFile, findings, 0o644)
			if err != nil {
				log.Fatalln(err)
			}

			log.Printf("Written findings to %s", outputFile)
		}

		if failed := client.Results.ErrorCount(); failed > 0 {
			log.Fatalf("Finished - %d of %d URLs could not be scanned", failed, len(urls))
		}
	},
}

func init() {
	scanCmd.Flags().StringVar(&serverURL, "server", "http://localhost:5000", "[optional] base URL of the urlsentry server")
	scanCmd.Flags().StringVar(&urlFile, "urlFile", "", "[optional] JSON file of the form {\"urls\": [...]}")
	scanCmd.Flags().Float64Var(&rateLimit, "rateLimit", 1, "[optional] rate limit of requests / second (0 disables pacing)")
	scanCmd.Flags().StringVar(&outputFile, "outputFile", "", "[optional] outputFile: path to write the findings to as JSON (default: \"\" -> writing to stdout)")
}
