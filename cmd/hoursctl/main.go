// Command hoursctl parses store hours lines and answers open/closed
// questions from the command line.
//
//	hoursctl parse "Mon-Sat: 10AM-6PM, Sun: Closed"
//	hoursctl status "Mon-Sat: 10AM-6PM" --at 2024-01-06T15:00:00Z --tz America/New_York
package main

import (
	"os"
	_ "time/tzdata"
)

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}
