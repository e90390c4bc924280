package main

import "hrpay/internal/app/cli"

func main() {
	cli.Execute()
}
