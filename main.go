package main

import "github.com/banahub/bayshore-backend-go/cmd"

func main() {
	cmd.Execute()
}
