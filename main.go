package main

import "github.com/phux/urlsentry/cmd"

func main() {
	cmd.Execute()
}
