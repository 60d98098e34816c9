package main

import "github.com/flauschfuchs/reduced-ui-animations/cmd"

func main() {
	cmd.Execute()
}
