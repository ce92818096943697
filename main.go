package main

import "github.com/fieldstat/edakit/cmd"

func main() {
	cmd.Execute()
}
