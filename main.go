package main

import (
	"os"

	"github.com/hartikaaggarwal/salesforce-chatter-bot-groups/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
