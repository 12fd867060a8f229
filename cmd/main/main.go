package main

import "github.com/Another0Noob/lmi-prune/cmd"

func main() {
	cmd.Execute()
}
