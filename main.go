package main

import "github.com/carelfelix2/scrapper/cmd"

func main() {
	cmd.Execute()
}
