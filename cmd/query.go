package main

import (
	"fmt"
	"strconv"

	"github.com/custodia-network/custodia/lib"
	"github.com/spf13/cobra"
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "query the custody engine rpc",
}

var (
	startId = uint64(0)
	limit   = 0
)

func init() {
	queryCmd.PersistentFlags().Uint64Var(&startId, "start-id", 0, "first proposal id for a proposals listing")
	queryCmd.PersistentFlags().IntVar(&limit, "limit", 0, "max items for a proposals listing, 0 is unbounded")
	queryCmd.AddCommand(heightCmd)
	queryCmd.AddCommand(memberCmd)
	queryCmd.AddCommand(membersCmd)
	queryCmd.AddCommand(proposalCmd)
	queryCmd.AddCommand(proposalsCmd)
	queryCmd.AddCommand(approvalsCmd)
	queryCmd.AddCommand(policyCmd)
	queryCmd.AddCommand(statsCmd)
	queryCmd.AddCommand(modeCmd)
	queryCmd.AddCommand(accountCmd)
	queryCmd.AddCommand(treasuryCmd)
	queryCmd.AddCommand(eventsCmd)
	queryCmd.AddCommand(stateCmd)
}

var (
	heightCmd = &cobra.Command{
		Use:   "height",
		Short: "query the engine's logical clock",
		Run: func(cmd *cobra.Command, args []string) {
			writeToConsole(client.Height())
		},
	}

	memberCmd = &cobra.Command{
		Use:   "member <address>",
		Short: "query the committee membership status of an address",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			writeToConsole(client.Member(argToAddress(args[0])))
		},
	}

	membersCmd = &cobra.Command{
		Use:   "members",
		Short: "query the full committee roster",
		Run: func(cmd *cobra.Command, args []string) {
			writeToConsole(client.Members())
		},
	}

	proposalCmd = &cobra.Command{
		Use:   "proposal <id>",
		Short: "query a proposal by id",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			writeToConsole(client.Proposal(argToUint64(args[0])))
		},
	}

	proposalsCmd = &cobra.Command{
		Use:   "proposals --start-id=0 --limit=10",
		Short: "query proposals ordered by id",
		Run: func(cmd *cobra.Command, args []string) {
			writeToConsole(client.Proposals(startId, limit))
		},
	}

	approvalsCmd = &cobra.Command{
		Use:   "approvals <id>",
		Short: "query the endorsement roster of a proposal",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			writeToConsole(client.Approvals(argToUint64(args[0])))
		},
	}

	policyCmd = &cobra.Command{
		Use:   "policy",
		Short: "query the active threshold policy",
		Run: func(cmd *cobra.Command, args []string) {
			writeToConsole(client.Policy())
		},
	}

	statsCmd = &cobra.Command{
		Use:   "stats",
		Short: "query the proposal lifecycle counters",
		Run: func(cmd *cobra.Command, args []string) {
			writeToConsole(client.Stats())
		},
	}

	modeCmd = &cobra.Command{
		Use:   "mode",
		Short: "query the initialization and pause flags",
		Run: func(cmd *cobra.Command, args []string) {
			writeToConsole(client.Mode())
		},
	}

	accountCmd = &cobra.Command{
		Use:   "account <address> <asset>",
		Short: "query the balance of an address for an asset",
		Args:  cobra.MinimumNArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			writeToConsole(client.Account(argToAddress(args[0]), args[1]))
		},
	}

	treasuryCmd = &cobra.Command{
		Use:   "treasury <asset>",
		Short: "query the custodied pool balance for an asset",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			writeToConsole(client.Treasury(args[0]))
		},
	}

	eventsCmd = &cobra.Command{
		Use:   "events <height>",
		Short: "query the events recorded at a logical clock value",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			writeToConsole(client.EventsByHeight(argToUint64(args[0])))
		},
	}

	stateCmd = &cobra.Command{
		Use:   "state",
		Short: "export the engine state in genesis form",
		Run: func(cmd *cobra.Command, args []string) {
			writeToConsole(client.State())
		},
	}
)

func argToUint64(arg string) uint64 {
	u, err := strconv.ParseUint(arg, 10, 64)
	if err != nil {
		l.Fatal(err.Error())
	}
	return u
}

func argToAddress(arg string) lib.HexBytes {
	address, err := lib.StringToBytes(arg)
	if err != nil {
		l.Fatal(err.Error())
	}
	return address
}

func writeToConsole(a any, err error) {
	if err != nil {
		l.Fatal(err.Error())
	}
	switch v := a.(type) {
	case string, *string:
		fmt.Println(a)
	default:
		bz, jsonErr := lib.MarshalJSONIndent(v)
		if jsonErr != nil {
			l.Fatal(jsonErr.Error())
		}
		fmt.Println(string(bz))
	}
}
