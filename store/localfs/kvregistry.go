package localfs

import (
	"flag"
	"fmt"

	"xdao.co/reflector/store"
	"xdao.co/reflector/store/kvregistry"
)

var (
	flagLocalDir string
)

func init() {
	kvregistry.MustRegister(kvregistry.Backend{
		Name:        "localfs",
		Description: "Local filesystem KV (directory)",
		Usage:       kvregistry.UsageCLI | kvregistry.UsageDaemon,
		RegisterFlags: func(fs *flag.FlagSet) {
			fs.StringVar(&flagLocalDir, "localfs-dir", "", "LocalFS state directory (for --backend=localfs)")
		},
		Open: func() (store.KV, func() error, error) {
			if flagLocalDir == "" {
				return nil, nil, fmt.Errorf("missing --localfs-dir")
			}
			kv, err := New(flagLocalDir)
			return kv, nil, err
		},
	})
}
