// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bitmark-inc/logger"
)

// basic defaults (directories and files are relative to the "DataDirectory" from Configuration file)
const (
	defaultDataDirectory = "" // this will error; use "." for the same directory as the config file

	defaultKeyFile         = "auctiond.key"
	defaultCertificateFile = "auctiond.crt"

	defaultLevelDBDirectory = "data"
	defaultDatabase         = "auction.leveldb"

	defaultLogDirectory = "log"
	defaultLogFile      = "auctiond.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size

	defaultRPCClients   = 10
	defaultRPCBandwidth = 25000000 // 25Mbps

	defaultOwnerCutBps = 375
	defaultGen0Floor   = "10000000000000000" // 10^16
)

// LoglevelMap - to hold log levels
type LoglevelMap map[string]string

// path expanded or calculated defaults
var defaultLogLevels = LoglevelMap{
	logger.DefaultTag: "critical",
}

// DatabaseType - the LevelDB location
type DatabaseType struct {
	Directory string `gluamapper:"directory" json:"directory"`
	Name      string `gluamapper:"name" json:"name"`
}

// RPCType - the client RPC listener
type RPCType struct {
	MaximumConnections int      `gluamapper:"maximum_connections" json:"maximum_connections"`
	Bandwidth          float64  `gluamapper:"bandwidth" json:"bandwidth"`
	Listen             []string `gluamapper:"listen" json:"listen"`
	Certificate        string   `gluamapper:"certificate" json:"certificate"`
	PrivateKey         string   `gluamapper:"private_key" json:"private_key"`
}

// PublishType - the live notification broadcaster
type PublishType struct {
	Broadcast []string `gluamapper:"broadcast" json:"broadcast"`
}

// AuctionType - the sale engine parameters
type AuctionType struct {
	OwnerCutBps int    `gluamapper:"owner_cut_bps" json:"owner_cut_bps"`
	Custody     string `gluamapper:"custody" json:"custody"`
	Beneficiary string `gluamapper:"beneficiary" json:"beneficiary"`
}

// MintType - the creation controller parameters
type MintType struct {
	MinimumGen0Price string `gluamapper:"minimum_gen0_price" json:"minimum_gen0_price"`
}

// MetadataType - the descriptive document service
type MetadataType struct {
	BaseURL string `gluamapper:"base_url" json:"base_url"`
}

// CoordinatorType - the composition root identities and reserves
type CoordinatorType struct {
	Administrator string `gluamapper:"administrator" json:"administrator"`
	Address       string `gluamapper:"address" json:"address"`
	SiringEngine  string `gluamapper:"siring_engine" json:"siring_engine"`
	ObligationFee string `gluamapper:"obligation_fee" json:"obligation_fee"`
	ReserveMargin string `gluamapper:"reserve_margin" json:"reserve_margin"`
}

// Configuration - the full configuration file layout
type Configuration struct {
	DataDirectory string       `gluamapper:"data_directory" json:"data_directory"`
	PidFile       string       `gluamapper:"pidfile" json:"pidfile"`
	Database      DatabaseType `gluamapper:"database" json:"database"`

	ClientRPC   RPCType              `gluamapper:"client_rpc" json:"client_rpc"`
	Publishing  PublishType          `gluamapper:"publishing" json:"publishing"`
	Auction     AuctionType          `gluamapper:"auction" json:"auction"`
	Mint        MintType             `gluamapper:"mint" json:"mint"`
	Metadata    MetadataType         `gluamapper:"metadata" json:"metadata"`
	Coordinator CoordinatorType      `gluamapper:"coordinator" json:"coordinator"`
	Logging     logger.Configuration `gluamapper:"logging" json:"logging"`
}

// GetConfiguration - read, decode and verify the configuration
func GetConfiguration(configurationFileName string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	options := &Configuration{

		DataDirectory: defaultDataDirectory,
		PidFile:       "", // no PidFile by default

		Database: DatabaseType{
			Directory: defaultLevelDBDirectory,
			Name:      defaultDatabase,
		},

		ClientRPC: RPCType{
			MaximumConnections: defaultRPCClients,
			Bandwidth:          defaultRPCBandwidth,
			Certificate:        defaultCertificateFile,
			PrivateKey:         defaultKeyFile,
		},

		Auction: AuctionType{
			OwnerCutBps: defaultOwnerCutBps,
		},

		Mint: MintType{
			MinimumGen0Price: defaultGen0Floor,
		},

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels:    defaultLogLevels,
		},
	}

	if err := ParseConfigurationFile(configurationFileName, options); nil != err {
		return nil, err
	}

	// ensure absolute data directory
	if "" == options.DataDirectory || "~" == options.DataDirectory {
		return nil, fmt.Errorf("path: %q is not a valid directory", options.DataDirectory)
	} else if "." == options.DataDirectory {
		options.DataDirectory = dataDirectory // same directory as the configuration file
	} else {
		options.DataDirectory = filepath.Clean(options.DataDirectory)
	}

	// this directory must exist - i.e. must be created prior to running
	if fileInfo, err := os.Stat(options.DataDirectory); nil != err {
		return nil, err
	} else if !fileInfo.IsDir() {
		return nil, fmt.Errorf("path: %q is not a directory", options.DataDirectory)
	}

	// force all relevant items to be absolute paths
	// if not, assign them to the data directory
	mustBeAbsolute := []*string{
		&options.Database.Directory,
		&options.ClientRPC.Certificate,
		&options.ClientRPC.PrivateKey,
		&options.Logging.Directory,
	}
	for _, f := range mustBeAbsolute {
		*f = ensureAbsolute(options.DataDirectory, *f)
	}

	// optional absolute paths i.e. blank or an absolute path
	optionalAbsolute := []*string{
		&options.PidFile,
	}
	for _, f := range optionalAbsolute {
		if "" != *f {
			*f = ensureAbsolute(options.DataDirectory, *f)
		}
	}

	// fail if any of these are not simple file names i.e. must not
	// contain a path separator, then add the correct directory prefix
	mustNotBePaths := [][2]*string{
		{&options.Database.Name, &options.Database.Directory},
		{&options.Logging.File, &options.Logging.Directory},
	}
	for _, f := range mustNotBePaths {
		switch filepath.Dir(*f[0]) {
		case "", ".":
			*f[0] = ensureAbsolute(*f[1], *f[0])
		default:
			return nil, fmt.Errorf("files: %q is not a plain name", *f[0])
		}
	}

	// make absolute and create directories if they do not already exist
	for _, d := range []*string{
		&options.Database.Directory,
		&options.Logging.Directory,
	} {
		*d = ensureAbsolute(options.DataDirectory, *d)
		if err := os.MkdirAll(*d, 0700); nil != err {
			return nil, err
		}
	}

	// done
	return options, nil
}

// ensure the path is absolute
func ensureAbsolute(directory string, filePath string) string {
	if !filepath.IsAbs(filePath) {
		filePath = filepath.Join(directory, filePath)
	}
	return filepath.Clean(filePath)
}
