package main

import "github.com/sangkips/insights/cmd/dashboard/cmd"

func main() {
	cmd.Execute()
}
