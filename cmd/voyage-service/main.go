package main

import (
	"fmt"
	"os"

	"github.com/voyagetravel/voyage-backend/tripservice"
)

func main() {
	if err := tripservice.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
