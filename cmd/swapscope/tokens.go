package main

import (
	"github.com/spf13/cobra"

	"swapScope/internal/token"
)

func newTokensCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokens",
		Short: "List tokens ranked by pool liquidity",
		RunE:  runTokens,
	}

	addCommonFlags(cmd)
	cmd.Flags().String("query", "", "search by symbol, name or address")
	cmd.Flags().String("from", "", "list tokens paired with this symbol or address")
	cmd.Flags().Int("limit", 20, "maximum tokens to list")

	pairsCmd := &cobra.Command{
		Use:   "pairs",
		Short: "List tradeable symbol pairs",
		RunE:  runPairs,
	}
	addCommonFlags(pairsCmd)
	cmd.AddCommand(pairsCmd)

	return cmd
}

func runTokens(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	ctx, stop := signalContext()
	defer stop()

	pools, err := a.api.Pools(ctx)
	if err != nil {
		return err
	}

	query, _ := cmd.Flags().GetString("query")
	from, _ := cmd.Flags().GetString("from")
	limit, _ := cmd.Flags().GetInt("limit")

	catalog := token.NewCatalog(a.resolver)
	var listings []token.Listing
	switch {
	case from != "":
		address, err := a.registry.ResolveAddress(from)
		if err != nil {
			return err
		}
		listings = catalog.Paired(ctx, pools, address, limit)
	case query != "":
		listings = catalog.Search(pools, query, limit)
	default:
		listings = catalog.Top(pools, limit)
	}

	return printJSON(cmd, listings)
}

func runPairs(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	ctx, stop := signalContext()
	defer stop()

	pools, err := a.api.Pools(ctx)
	if err != nil {
		return err
	}
	return printJSON(cmd, token.NewCatalog(a.resolver).Pairs(pools))
}
