// Lumen inspect CLI - renders value snapshots persisted by generated programs
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/lumen-lang/lumen/manifest"
	"github.com/lumen-lang/lumen/snapshot"
)

func main() {
	list := flag.Bool("l", false, "List stored snapshot ids")
	storePath := flag.String("store", "", "Snapshot store path (overrides lumen.toml)")
	verbosity := flag.Int("v", 0, "Log verbosity")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: lumen-inspect [options] [ids...]\n\n")
		fmt.Fprintf(os.Stderr, "Renders value snapshots from the project's snapshot store.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  lumen-inspect -l              # List snapshot ids\n")
		fmt.Fprintf(os.Stderr, "  lumen-inspect <id>            # Render one snapshot\n")
		fmt.Fprintf(os.Stderr, "  lumen-inspect --store dev.db <id>\n")
	}
	flag.Parse()

	commonlog.Configure(*verbosity, nil)
	log := commonlog.GetLogger("lumen-inspect")

	path := *storePath
	if path == "" {
		m, err := manifest.FindAndLoad(".")
		if err != nil {
			log.Errorf("loading manifest: %v", err)
			os.Exit(1)
		}
		if m == nil {
			path = "lumen-snapshots.db"
		} else {
			m.Apply()
			path = m.SnapshotPath()
			log.Infof("using manifest in %s", m.Dir)
		}
	}

	store, err := snapshot.Open(path)
	if err != nil {
		log.Errorf("opening snapshot store: %v", err)
		os.Exit(1)
	}
	defer store.Close()

	if *list {
		ids, err := store.List()
		if err != nil {
			log.Errorf("listing snapshots: %v", err)
			os.Exit(1)
		}
		for _, id := range ids {
			fmt.Println(id)
		}
		return
	}

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	for _, id := range flag.Args() {
		v, err := store.Load(id)
		if err != nil {
			log.Errorf("loading %s: %v", id, err)
			os.Exit(1)
		}
		fmt.Println(v.Inspect())
		v.Release()
	}
}
