package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Monika-msk/vtu-internyet/internal/subscribers"
)

var subscribersCmd = &cobra.Command{
	Use:   "subscribers",
	Short: "List the subscribers in the local store",
	RunE:  runSubscribers,
}

var subscribersAddCmd = &cobra.Command{
	Use:   "add <email>",
	Short: "Add a subscriber to the local store",
	Args:  cobra.ExactArgs(1),
	RunE:  runSubscribersAdd,
}

func init() {
	subscribersCmd.AddCommand(subscribersAddCmd)
	rootCmd.AddCommand(subscribersCmd)
}

func runSubscribers(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return err
	}
	store := subscribers.NewFileStore(cfg.Subscribers.File)
	emails, err := store.Emails()
	if err != nil {
		return fmt.Errorf("reading subscribers: %w", err)
	}
	if len(emails) == 0 {
		fmt.Printf("No subscribers in %s\n", store.Path())
		return nil
	}

	sorted := make([]string, 0, len(emails))
	for email := range emails {
		sorted = append(sorted, email)
	}
	sort.Strings(sorted)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "#\tEMAIL")
	for i, email := range sorted {
		fmt.Fprintf(w, "%d\t%s\n", i+1, email)
	}
	w.Flush()
	fmt.Printf("\n%d subscriber(s) in %s\n", len(sorted), store.Path())
	return nil
}

func runSubscribersAdd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return err
	}
	store := subscribers.NewFileStore(cfg.Subscribers.File)
	added, err := store.Add(args[0])
	if err != nil {
		return fmt.Errorf("adding subscriber: %w", err)
	}
	if !added {
		fmt.Printf("%s is already subscribed\n", args[0])
		return nil
	}
	fmt.Printf("Subscribed %s\n", args[0])
	return nil
}
