package main

import (
	"flag"

	"github.com/brettbedarf/vstore/config"
	"github.com/brettbedarf/vstore/filesystem"
	"github.com/brettbedarf/vstore/internal/util"
	"github.com/brettbedarf/vstore/requests"
)

func main() {
	// Parse command line arguments
	var (
		configPath string
		nodesDef   string
		findName   string
		verbose    int
	)
	flag.StringVar(&configPath, "config", "", "Path to config file (.yaml/.yml/.json)")
	flag.StringVar(&configPath, "c", "", "--config (shorthand)")
	flag.StringVar(&nodesDef, "nodes", "", "Path to nodes def file")
	flag.StringVar(&nodesDef, "n", "", "--nodes (shorthand)")
	flag.StringVar(&findName, "find", "", "Search the loaded store for files with this exact name")
	flag.StringVar(&findName, "f", "", "--find (shorthand)")
	flag.IntVar(&verbose, "verbose", 0, "Log verbosity level between 1 (error) and 5 (trace). Overrides config when set.")
	flag.IntVar(&verbose, "v", 0, "--verbose (shorthand)")
	flag.Parse()

	// Build config: defaults < file < env < -verbose flag
	cfg := config.NewDefaultConfig()
	if configPath != "" {
		override, err := config.LoadConfigOverrideFile(configPath)
		if err != nil {
			util.InitializeLogger(util.ErrorLevel)
			logger := util.GetLogger("main")
			logger.Fatal().Err(err).Str("config", configPath).Msg("Failed to load config file")
		}
		cfg.Merge(override)
	}
	envOverride, err := config.LoadConfigOverrideEnv()
	if err != nil {
		util.InitializeLogger(util.ErrorLevel)
		logger := util.GetLogger("main")
		logger.Fatal().Err(err).Msg("Failed to load env overrides")
	}
	cfg.Merge(envOverride)

	if verbose != 0 {
		if verbose < 1 {
			verbose = 1
		}
		if verbose > 5 {
			verbose = 5
		}
		logLvls := [5]util.LogLevel{util.ErrorLevel, util.WarnLevel, util.InfoLevel, util.DebugLevel, util.TraceLevel}
		cfg.LogLvl = logLvls[verbose-1]
	}

	// Initialize logger
	util.InitializeLogger(cfg.LogLvl)
	logger := util.GetLogger("main")

	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("Invalid configuration")
	}
	logger.Info().Str("nodes", nodesDef).Str("policy", cfg.DefaultPolicy).Msg("vstore initializing")

	// Init the store
	fs := filesystem.NewFS(cfg)

	// Load node definitions
	if nodesDef != "" {
		defs, err := requests.DecodeNodeFile(nodesDef)
		if err != nil {
			logger.Fatal().Err(err).Str("nodes", nodesDef).Msg("Failed to read nodes def file")
		}
		logger.Debug().
			Int("files", len(defs.Files)).
			Int("folders", len(defs.Folders)).
			Msg("Successfully loaded node definitions")

		// Add nodes to the store, folders first so explicit policies
		// land before file inserts
		folderAddCnt := 0
		for _, req := range defs.Folders {
			if _, err := fs.AddFolderNode(req); err != nil {
				logger.Debug().Interface("request", req).Err(err).Msg("Failed to add folder request")
				continue
			}
			folderAddCnt++
		}
		fileAddCnt := 0
		for _, req := range defs.Files {
			if _, err := fs.AddFileNode(req); err != nil {
				logger.Debug().Interface("request", req).Err(err).Msg("Failed to add file request")
				continue
			}
			fileAddCnt++
		}
		logger.Info().Int("folders", folderAddCnt).Int("files", fileAddCnt).Msg("Added new nodes to store")
	} else {
		logger.Warn().Msg("No nodes def file provided; store starts empty")
	}

	// Whole-tree search
	if findName != "" {
		hits := fs.Search(findName)
		for _, f := range hits {
			logger.Info().Str("path", f.Path()).Int("bytes", len(f.Content())).Msg("Found file")
		}
		logger.Info().Str("name", findName).Int("hits", len(hits)).Msg("Search finished")
	}

	logTree(logger, fs)
}

// logTree dumps every node path at debug level, folders breadth-first
func logTree(logger util.Logger, fs *filesystem.FileSystem) {
	queue := []*filesystem.Folder{fs.Root()}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, name := range cur.ChildNames() {
			child, ok := cur.GetChild(name)
			if !ok {
				continue
			}
			switch c := child.(type) {
			case *filesystem.Folder:
				logger.Debug().Str("path", c.Path()).Str("policy", c.Policy().String()).Msg("folder")
				queue = append(queue, c)
			case *filesystem.File:
				logger.Debug().Str("path", c.Path()).Int("bytes", len(c.Content())).Msg("file")
			}
		}
	}
}
