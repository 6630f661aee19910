//go:build cli
// +build cli

package main

import (
	"github.com/ghogue02/leora-admin-portal-sub016/cmd"
	"github.com/ghogue02/leora-admin-portal-sub016/config"
)

func main() {
	config.LoadEnv()
	cmd.Execute()
}
