package main

import "github.com/pyowdigitals/optin/cmd/optin-cli/cmd"

func main() {
	cmd.Execute()
}
