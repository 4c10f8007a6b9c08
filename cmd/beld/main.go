// Command beld is the resource baker CLI: it drives resource/manager
// over a filesystem asset source and a buntdb-backed store, per
// spec.md §6.1.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli"

	"github.com/byte-engine/engine/cmn/cos"
	"github.com/byte-engine/engine/cmn/nlog"
	"github.com/byte-engine/engine/resource"
	"github.com/byte-engine/engine/resource/bake"
	"github.com/byte-engine/engine/resource/manager"
	"github.com/byte-engine/engine/resource/store"
)

func main() {
	app := cli.NewApp()
	app.Name = "beld"
	app.Usage = "bake and manage byte-engine resources"
	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "source, s", Value: "assets", Usage: "asset source directory"},
		cli.StringFlag{Name: "destination, d", Value: "resources", Usage: "resource store directory"},
	}
	app.Commands = []cli.Command{
		cmdWipe(),
		cmdList(),
		cmdBake(),
		cmdDelete(),
	}

	if err := app.Run(os.Args); err != nil {
		nlog.Errorln(err)
		os.Exit(1)
	}
}

func openManager(c *cli.Context) (*manager.Manager, func(), error) {
	backend, err := store.Open(c.GlobalString("destination"))
	if err != nil {
		return nil, nil, cos.ErrStorageError(err, "open store at %s", c.GlobalString("destination"))
	}
	assets := resource.NewFSAssetSource(c.GlobalString("source"))
	m := manager.New(assets, backend, bake.NewRegistry())
	return m, func() { backend.Close() }, nil
}

func cmdWipe() cli.Command {
	return cli.Command{
		Name:  "wipe",
		Usage: "delete every baked resource from the store",
		Action: func(c *cli.Context) error {
			m, closeFn, err := openManager(c)
			if err != nil {
				return err
			}
			defer closeFn()
			if err := m.Wipe(); err != nil {
				return cos.ErrStorageError(err, "wipe")
			}
			nlog.Infof("wiped %s", c.GlobalString("destination"))
			return nil
		},
	}
}

func cmdList() cli.Command {
	return cli.Command{
		Name:  "list",
		Usage: "list every resource id currently in the store",
		Action: func(c *cli.Context) error {
			m, closeFn, err := openManager(c)
			if err != nil {
				return err
			}
			defer closeFn()
			ids, err := m.List()
			if err != nil {
				return cos.ErrStorageError(err, "list")
			}
			for _, id := range ids {
				fmt.Println(id)
			}
			return nil
		},
	}
}

func cmdBake() cli.Command {
	return cli.Command{
		Name:      "bake",
		Usage:     "bake one or more asset ids into the store",
		ArgsUsage: "ID...",
		Flags: []cli.Flag{
			cli.BoolFlag{Name: "sync", Usage: "no effect: beld always bakes synchronously (no-op, kept for script compatibility)"},
		},
		Action: func(c *cli.Context) error {
			m, closeFn, err := openManager(c)
			if err != nil {
				return err
			}
			defer closeFn()

			ids := c.Args()
			if len(ids) == 0 {
				return cos.NewErr(cos.KindNotFound, "bake requires at least one id")
			}

			var errs cos.Errs
			for _, id := range ids {
				if err := m.Bake(resource.ID(id)); err != nil {
					nlog.Warningf("bake %s: %v", id, err)
					errs.Add(err)
					continue
				}
				nlog.Infof("baked %s", id)
			}
			if cnt, err := errs.JoinErr(); cnt > 0 {
				return err
			}
			return nil
		},
	}
}

func cmdDelete() cli.Command {
	return cli.Command{
		Name:      "delete",
		Usage:     "delete one or more resource ids from the store",
		ArgsUsage: "ID...",
		Action: func(c *cli.Context) error {
			m, closeFn, err := openManager(c)
			if err != nil {
				return err
			}
			defer closeFn()

			ids := c.Args()
			if len(ids) == 0 {
				return cos.NewErr(cos.KindNotFound, "delete requires at least one id")
			}

			var errs cos.Errs
			for _, id := range ids {
				if err := m.Delete(resource.ID(id)); err != nil {
					nlog.Warningf("delete %s: %v", id, err)
					errs.Add(err)
					continue
				}
				nlog.Infof("deleted %s", id)
			}
			if cnt, err := errs.JoinErr(); cnt > 0 {
				return err
			}
			return nil
		},
	}
}
