package main

import "github.com/Fawaz-asif/Email-spam-detector/internal/cli"

func main() {
	cli.Execute()
}
