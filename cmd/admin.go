package main

import (
	"encoding/json"

	"github.com/custodia-network/custodia/engine"
	"github.com/spf13/cobra"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "mutating commands against a custody engine node",
}

var metadata = ""

func init() {
	adminCmd.PersistentFlags().StringVar(&metadata, "metadata", "", "free-form note attached to a new proposal")
	adminCmd.AddCommand(txTransferCmd)
	adminCmd.AddCommand(txBatchTransferCmd)
	adminCmd.AddCommand(txAddMemberCmd)
	adminCmd.AddCommand(txRemoveMemberCmd)
	adminCmd.AddCommand(txSetThresholdCmd)
	adminCmd.AddCommand(txPauseCmd)
	adminCmd.AddCommand(txUnpauseCmd)
	adminCmd.AddCommand(endorseCmd)
	adminCmd.AddCommand(revokeCmd)
	adminCmd.AddCommand(executeCmd)
	adminCmd.AddCommand(cancelCmd)
	adminCmd.AddCommand(depositCmd)
}

var (
	txTransferCmd = &cobra.Command{
		Use:   "tx-transfer <proposer> <recipient> <amount> <asset>",
		Short: "propose a single treasury payout",
		Args:  cobra.MinimumNArgs(4),
		Run: func(cmd *cobra.Command, args []string) {
			writeToConsole(client.Propose(argToAddress(args[0]), &engine.Proposal{
				Kind: engine.KindTransfer,
				Transfer: &engine.TransferPayload{
					Recipient: argToAddress(args[1]),
					Amount:    argToUint64(args[2]),
					Asset:     args[3],
				},
				Metadata: metadata,
			}))
		},
	}

	txBatchTransferCmd = &cobra.Command{
		Use:   "tx-batch-transfer <proposer> <payloads-json>",
		Short: "propose a batch of treasury payouts from a JSON array",
		Args:  cobra.MinimumNArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			var batch []*engine.TransferPayload
			if err := json.Unmarshal([]byte(args[1]), &batch); err != nil {
				l.Fatal(err.Error())
			}
			writeToConsole(client.Propose(argToAddress(args[0]), &engine.Proposal{
				Kind:     engine.KindBatchTransfer,
				Batch:    batch,
				Metadata: metadata,
			}))
		},
	}

	txAddMemberCmd = &cobra.Command{
		Use:   "tx-add-member <proposer> <member>",
		Short: "propose seating a new committee member",
		Args:  cobra.MinimumNArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			writeToConsole(client.Propose(argToAddress(args[0]), &engine.Proposal{
				Kind:     engine.KindAddMember,
				Member:   argToAddress(args[1]),
				Metadata: metadata,
			}))
		},
	}

	txRemoveMemberCmd = &cobra.Command{
		Use:   "tx-remove-member <proposer> <member>",
		Short: "propose unseating a committee member",
		Args:  cobra.MinimumNArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			writeToConsole(client.Propose(argToAddress(args[0]), &engine.Proposal{
				Kind:     engine.KindRemoveMember,
				Member:   argToAddress(args[1]),
				Metadata: metadata,
			}))
		},
	}

	txSetThresholdCmd = &cobra.Command{
		Use:   "tx-set-threshold <proposer> <value>",
		Short: "propose a new standard approval threshold",
		Args:  cobra.MinimumNArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			writeToConsole(client.Propose(argToAddress(args[0]), &engine.Proposal{
				Kind:      engine.KindSetThreshold,
				Threshold: argToUint64(args[1]),
				Metadata:  metadata,
			}))
		},
	}

	txPauseCmd = &cobra.Command{
		Use:   "tx-pause <proposer>",
		Short: "propose pausing the engine",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			writeToConsole(client.Propose(argToAddress(args[0]), &engine.Proposal{
				Kind:     engine.KindPause,
				Metadata: metadata,
			}))
		},
	}

	txUnpauseCmd = &cobra.Command{
		Use:   "tx-unpause <proposer>",
		Short: "propose lifting a pause",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			writeToConsole(client.Propose(argToAddress(args[0]), &engine.Proposal{
				Kind:     engine.KindUnpause,
				Metadata: metadata,
			}))
		},
	}

	endorseCmd = &cobra.Command{
		Use:   "endorse <id> <address>",
		Short: "endorse a proposal as a committee member",
		Args:  cobra.MinimumNArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			writeToConsole(client.Endorse(argToUint64(args[0]), argToAddress(args[1])))
		},
	}

	revokeCmd = &cobra.Command{
		Use:   "revoke <id> <address>",
		Short: "withdraw an endorsement before execution",
		Args:  cobra.MinimumNArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			writeToConsole(client.Revoke(argToUint64(args[0]), argToAddress(args[1])))
		},
	}

	executeCmd = &cobra.Command{
		Use:   "execute <id> <caller>",
		Short: "execute a proposal that reached its quorum",
		Args:  cobra.MinimumNArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			writeToConsole(client.Execute(argToUint64(args[0]), argToAddress(args[1])))
		},
	}

	cancelCmd = &cobra.Command{
		Use:   "cancel <id> <caller>",
		Short: "cancel an open proposal",
		Args:  cobra.MinimumNArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			writeToConsole(client.Cancel(argToUint64(args[0]), argToAddress(args[1])))
		},
	}

	depositCmd = &cobra.Command{
		Use:   "deposit <asset> <amount>",
		Short: "credit the treasury pool of an asset",
		Args:  cobra.MinimumNArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			writeToConsole(client.Deposit(args[0], argToUint64(args[1])))
		},
	}
)
