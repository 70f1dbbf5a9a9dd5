// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {

	app := cli.NewApp()
	app.Name = "auction-cli"
	app.Usage = "command-line client for auctiond"
	app.Version = version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	assetFlag := cli.Uint64Flag{
		Name:  "asset, a",
		Usage: "*asset `ID`",
	}
	ownerFlag := cli.StringFlag{
		Name:  "owner, o",
		Usage: "*account `ADDRESS`",
	}
	toFlag := cli.StringFlag{
		Name:  "to, t",
		Usage: "*receiving account `ADDRESS`",
	}

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:  "connect, c",
			Value: "",
			Usage: "*auctiond host/IP and port, `HOST:PORT`",
		},
		cli.StringFlag{
			Name:  "key, k",
			Value: "",
			Usage: " hex private key or seed for signed calls `KEY`",
		},
	}

	app.Commands = []cli.Command{
		{
			Name:   "info",
			Usage:  "display node status",
			Action: runInfo,
		},
		{
			Name:  "events",
			Usage: "poll the committed notification log",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "start, s",
					Usage: " first sequence `NUMBER`",
				},
				cli.IntFlag{
					Name:  "count, n",
					Value: 20,
					Usage: " number of records `COUNT`",
				},
			},
			Action: runEvents,
		},
		{
			Name:      "balance",
			Usage:     "count of assets held by an account",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{ownerFlag},
			Action:    runBalanceOf,
		},
		{
			Name:      "owner-of",
			Usage:     "current owner of an asset",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{assetFlag},
			Action:    runOwnerOf,
		},
		{
			Name:   "supply",
			Usage:  "total number of assets created",
			Action: runSupply,
		},
		{
			Name:      "tokens",
			Usage:     "every asset id held by an account",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{ownerFlag},
			Action:    runTokens,
		},
		{
			Name:      "asset",
			Usage:     "full record of an asset",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{assetFlag},
			Action:    runAsset,
		},
		{
			Name:      "metadata",
			Usage:     "descriptive document URI for an asset",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{assetFlag},
			Action:    runMetadata,
		},
		{
			Name:      "transfer",
			Usage:     "move an owned asset to another account",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{toFlag, assetFlag},
			Action:    runTransfer,
		},
		{
			Name:      "approve",
			Usage:     "grant another account the right to take an asset",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{toFlag, assetFlag},
			Action:    runApprove,
		},
		{
			Name:      "approve-siring",
			Usage:     "grant another account the right to sire with an asset",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{toFlag, assetFlag},
			Action:    runApproveSiring,
		},
		{
			Name:      "transfer-from",
			Usage:     "take a previously approved asset",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "from, f",
					Usage: "*current owner `ADDRESS`",
				},
				toFlag,
				assetFlag,
			},
			Action: runTransferFrom,
		},
		{
			Name:      "auction-create",
			Usage:     "escrow an owned asset and open its price curve",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				assetFlag,
				cli.StringFlag{
					Name:  "start-price, s",
					Usage: "*opening price `AMOUNT`",
				},
				cli.StringFlag{
					Name:  "end-price, e",
					Usage: "*closing price `AMOUNT`",
				},
				cli.Uint64Flag{
					Name:  "duration, d",
					Usage: "*curve duration `SECONDS`",
				},
			},
			Action: runAuctionCreate,
		},
		{
			Name:      "bid",
			Usage:     "settle an active auction at the current curve price",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				assetFlag,
				cli.StringFlag{
					Name:  "amount, m",
					Usage: "*offered `AMOUNT`",
				},
			},
			Action: runBid,
		},
		{
			Name:      "auction-cancel",
			Usage:     "take an unsold asset back out of escrow",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				assetFlag,
				cli.BoolFlag{
					Name:  "paused, p",
					Usage: " administrator cancel while paused",
				},
			},
			Action: runAuctionCancel,
		},
		{
			Name:      "auction",
			Usage:     "active listing for an asset",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{assetFlag},
			Action:    runAuctionGet,
		},
		{
			Name:      "price",
			Usage:     "instantaneous price of an active auction",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{assetFlag},
			Action:    runPrice,
		},
		{
			Name:   "average-price",
			Usage:  "average of the recent engine originated sales",
			Action: runAveragePrice,
		},
		{
			Name:   "withdraw",
			Usage:  "move the accumulated engine cut to the beneficiary",
			Action: runWithdraw,
		},
		{
			Name:      "mint-promo",
			Usage:     "create a promotional asset",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "genes, g",
					Usage: "*genome, decimal or 0x hex `GENES`",
				},
				cli.StringFlag{
					Name:  "owner, o",
					Usage: " receiving account, blank for administrator `ADDRESS`",
				},
			},
			Action: runMintPromo,
		},
		{
			Name:      "mint-gen0",
			Usage:     "create a gen0 asset and list it for auction",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "genes, g",
					Usage: "*genome, decimal or 0x hex `GENES`",
				},
			},
			Action: runMintGen0,
		},
		{
			Name:   "next-price",
			Usage:  "opening price the next gen0 listing would use",
			Action: runNextPrice,
		},
		{
			Name:      "deposit",
			Usage:     "credit an account balance",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "amount, m",
					Usage: "*deposit `AMOUNT`",
				},
				cli.StringFlag{
					Name:  "to, t",
					Usage: " receiving account, blank for caller `ADDRESS`",
				},
			},
			Action: runDeposit,
		},
		{
			Name:      "funds-balance",
			Usage:     "current balance of an account",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{ownerFlag},
			Action:    runFundsBalance,
		},
		{
			Name:   "pause",
			Usage:  "halt the public surface",
			Action: runPause,
		},
		{
			Name:   "unpause",
			Usage:  "resume the public surface",
			Action: runUnpause,
		},
		{
			Name:      "set-finance",
			Usage:     "appoint the finance controller",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "holder, o",
					Usage: "*appointed account `ADDRESS`",
				},
			},
			Action: runSetFinance,
		},
		{
			Name:      "set-operations",
			Usage:     "appoint the operations controller",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "holder, o",
					Usage: "*appointed account `ADDRESS`",
				},
			},
			Action: runSetOperations,
		},
		{
			Name:      "set-sale-engine",
			Usage:     "register the sale engine collaborator",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "engine, e",
					Usage: "*engine account `ADDRESS`",
				},
			},
			Action: runSetSaleEngine,
		},
		{
			Name:      "set-siring-engine",
			Usage:     "register the siring engine collaborator",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "engine, e",
					Usage: "*engine account `ADDRESS`",
				},
			},
			Action: runSetSiringEngine,
		},
		{
			Name:   "set-gene-oracle",
			Usage:  "attach the daemon configured gene oracle",
			Action: runSetGeneOracle,
		},
		{
			Name:      "set-new-address",
			Usage:     "mark this deployment as superseded, permanently",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "address, a",
					Usage: "*replacement deployment `ADDRESS`",
				},
			},
			Action: runSetNewAddress,
		},
		{
			Name:   "sweep",
			Usage:  "finance controller collects the unreserved balance",
			Action: runSweep,
		},
	}

	if err := app.Run(os.Args); nil != err {
		fmt.Fprintf(os.Stderr, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}
