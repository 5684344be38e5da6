package main

import "github.com/abtree/payment-backend/cmd"

func main() {
	cmd.Execute()
}
