package main

import "translation-validator/internal/cli"

func main() {
	cli.Execute()
}
