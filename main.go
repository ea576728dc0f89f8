package main

import "github.com/wundergraph/graphiql-go/cmd"

func main() {
	cmd.Execute()
}
