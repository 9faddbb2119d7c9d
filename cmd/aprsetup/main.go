/*
 * main.go, part of goAPR.
 *
 * Copyright 2025 Raul Mera A. (rmeraaatacademicosdotutadotcl)
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

// Command aprsetup writes the AMBER restraint files of an attach-pull-release
// calculation, one per window, for each configured host-guest system.
//
// Usage:
//
//	aprsetup [config.yaml|config.toml]
//
// Without a configuration file, the default parameters are used.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/rmera/goapr/apr"
	"github.com/rmera/goapr/config"
)

func main() {
	if len(os.Args) > 2 {
		log.Fatal("At most one configuration file can be specified in the arguments")
	}

	c := config.Default()
	if len(os.Args) == 2 {
		log.Printf("Reading configuration file `%s`\n", os.Args[1])
		var err error
		c, err = config.Load(os.Args[1])
		if err != nil {
			log.Fatal(fmt.Errorf("config: %w", err))
		}
	} else {
		log.Println("No configuration file given, using the default parameters")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := apr.Run(ctx, c)
	for _, r := range results {
		if r != nil {
			log.Printf("%s: %d restraint files written (%s to %s)", r.System, len(r.Files), r.Windows[0], r.Windows[len(r.Windows)-1])
		}
	}
	if err != nil {
		log.Fatal(err)
	}

	log.Println("Done")
}
