// Command tripledb-dump opens a BadgerDB-backed store, cartesian-joins the
// AEV scans of two attributes, and prints the result as a markdown table.
// It exists to exercise the storagekey/kvstore/relation/planprint packages
// end to end, the way a storage-and-executor demo exercises its own stack.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/kvgraph/kvstore"
	"github.com/kvgraph/planprint"
	"github.com/kvgraph/relation"
	"github.com/kvgraph/storagekey"
	"github.com/kvgraph/tripledb"
)

func main() {
	var dbPath string
	var attrName, attr2Name string
	var attrID, attr2ID uint64
	var seed bool

	flag.StringVar(&dbPath, "db", "tripledb.db", "database path")
	flag.StringVar(&attrName, "attr-name", "demo/person", "display name of the left attribute (the scan uses -attr-id)")
	flag.Uint64Var(&attrID, "attr-id", 1, "left attribute id to scan")
	flag.StringVar(&attr2Name, "attr2-name", "demo/color", "display name of the right attribute (the scan uses -attr2-id)")
	flag.Uint64Var(&attr2ID, "attr2-id", 2, "right attribute id to scan")
	flag.BoolVar(&seed, "seed", false, "write a handful of demo facts before scanning")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Cartesian-join the AEV scans of two attributes and print the result\n")
		fmt.Fprintf(os.Stderr, "as a markdown table.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	store, err := kvstore.NewBadgerStore(dbPath)
	if err != nil {
		log.Fatalf("tripledb-dump: opening %s: %v", dbPath, err)
	}
	defer store.Close()

	attr, err := tripledb.NewAttrId(attrID)
	if err != nil {
		log.Fatalf("tripledb-dump: bad attribute id: %v", err)
	}
	attr2, err := tripledb.NewAttrId(attr2ID)
	if err != nil {
		log.Fatalf("tripledb-dump: bad attr2 id: %v", err)
	}

	if seed {
		if err := seedDemoFacts(store, attr, attr2); err != nil {
			log.Fatalf("tripledb-dump: seeding demo facts: %v", err)
		}
	}

	left := relation.NewAEVScan(store, attr, attrName, "e", "v")
	right := relation.NewAEVScan(store, attr2, attr2Name, "e2", "v2")
	join := relation.NewCartesianJoin(left, right)

	fmt.Println(planprint.PlanString(join))

	table, err := planprint.PrintOperator(join)
	if err != nil {
		log.Fatalf("tripledb-dump: %v", err)
	}
	fmt.Println(table)
}

func seedDemoFacts(store *kvstore.BadgerStore, attr, attr2 tripledb.AttrId) error {
	leftFacts := []struct {
		entity uint64
		value  tripledb.DataValue
	}{
		{1, tripledb.NewString("alice")},
		{2, tripledb.NewString("bob")},
	}
	rightFacts := []struct {
		entity uint64
		value  tripledb.DataValue
	}{
		{10, tripledb.NewString("red")},
		{11, tripledb.NewString("blue")},
	}
	for _, f := range leftFacts {
		entity, err := tripledb.NewEntityId(f.entity)
		if err != nil {
			return err
		}
		key := storagekey.EncodeAEVKey(attr, entity, f.value, tripledb.ValidityMax)
		if err := store.Put(key.Bytes(), nil); err != nil {
			return err
		}
	}
	for _, f := range rightFacts {
		entity, err := tripledb.NewEntityId(f.entity)
		if err != nil {
			return err
		}
		key := storagekey.EncodeAEVKey(attr2, entity, f.value, tripledb.ValidityMax)
		if err := store.Put(key.Bytes(), nil); err != nil {
			return err
		}
	}
	return nil
}
