package main

import "github.com/venue-master/admin-console/cmd/adminctl/cmd"

func main() {
	cmd.Execute()
}
