/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package frontend-rest Verifier Frontend REST API.
package main

import (
	"github.com/spf13/cobra"
	"github.com/trustbloc/logutil-go/pkg/log"

	"github.com/trustbloc/verifier-frontend/cmd/frontend-rest/startcmd"
)

var logger = log.New("frontend-rest")

func main() {
	rootCmd := &cobra.Command{
		Use: "frontend-rest",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.HelpFunc()(cmd, args)
		},
	}

	rootCmd.AddCommand(startcmd.GetStartCmd())

	if err := rootCmd.Execute(); err != nil {
		logger.Fatal("Failed to run frontend-rest", log.WithError(err))
	}
}
