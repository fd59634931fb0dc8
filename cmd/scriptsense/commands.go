package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"scriptsense/internal/diagfmt"
)

func scriptCmd(use, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:         use,
		Short:       short,
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{scriptAnnotation: "true"},
	}
	cmd.Flags().Uint32("line", 0, "analyse only the first N lines (0 = whole file)")
	return cmd
}

func loadScript(cmd *cobra.Command, args []string) (string, error) {
	line, _ := cmd.Flags().GetUint32("line")
	return readScript(args[0], line)
}

func newNamesCmd(a *app) *cobra.Command {
	cmd := scriptCmd("names FILE", "Complete an identifier prefix at the end of FILE")
	cmd.Flags().String("prefix", "", "identifier prefix")
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		src, err := loadScript(cmd, args)
		if err != nil {
			return err
		}
		prefix, _ := cmd.Flags().GetString("prefix")
		return a.printItems(cmd.OutOrStdout(), a.engine.Names(cmd.Context(), src, prefix))
	}
	return cmd
}

func newMembersCmd(a *app) *cobra.Command {
	cmd := scriptCmd("members FILE", "Complete members of an expression at the end of FILE")
	cmd.Flags().String("expr", "", "expression before the dot")
	cmd.Flags().String("seed", "", "partial member name after the dot")
	cmd.Flags().String("indent", "", "indentation of the line being completed")
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		expr, _ := cmd.Flags().GetString("expr")
		if expr == "" {
			return errors.New("--expr is required")
		}
		src, err := loadScript(cmd, args)
		if err != nil {
			return err
		}
		seed, _ := cmd.Flags().GetString("seed")
		indent, _ := cmd.Flags().GetString("indent")
		return a.printItems(cmd.OutOrStdout(), a.engine.Members(cmd.Context(), src, indent, expr, seed))
	}
	return cmd
}

func newParamsCmd(a *app) *cobra.Command {
	cmd := scriptCmd("params FILE", "List variables that fit a parameter type at the end of FILE")
	cmd.Flags().String("type", "", "declared parameter type")
	cmd.Flags().String("host", "", "host type of the parameter, when different")
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		typeName, _ := cmd.Flags().GetString("type")
		hostType, _ := cmd.Flags().GetString("host")
		if typeName == "" && hostType == "" {
			return errors.New("--type or --host is required")
		}
		src, err := loadScript(cmd, args)
		if err != nil {
			return err
		}
		return a.printItems(cmd.OutOrStdout(), a.engine.ParameterChoices(cmd.Context(), src, typeName, hostType))
	}
	return cmd
}

func newScopeCmd(a *app) *cobra.Command {
	cmd := scriptCmd("scope FILE", "Dump the inferred scope tree of FILE, or its parse diagnostics with --format json")
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		src, err := loadScript(cmd, args)
		if err != nil {
			return err
		}
		an := a.engine.Analyze(cmd.Context(), src)
		out := cmd.OutOrStdout()
		if a.format == "json" {
			return diagfmt.JSON(out, an.Bag, an.Files, diagfmt.JSONOpts{IncludePositions: true, IncludeNotes: true})
		}
		if an.Bag.Len() > 0 {
			diagfmt.Pretty(cmd.ErrOrStderr(), an.Bag, an.Files, diagfmt.PrettyOpts{
				Color:     !color.NoColor,
				Context:   1,
				ShowNotes: true,
			})
		}
		if an.Failed {
			fmt.Fprintf(out, "# prefix does not parse (%d diagnostics)\n", an.Bag.Len())
		}
		return an.Table.Dump(out, an.Root)
	}
	return cmd
}

func newModulesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "modules",
		Short: "List modules on the search roots, or the members of one",
		Args:  cobra.NoArgs,
	}
	cmd.Flags().String("prefix", "", "dotted module prefix")
	cmd.Flags().String("members", "", "print the members of this module")
	cmd.Flags().String("seed", "", "member prefix used with --members")
	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		if module, _ := cmd.Flags().GetString("members"); module != "" {
			seed, _ := cmd.Flags().GetString("seed")
			items := a.engine.ImportMembers(cmd.Context(), module, seed)
			if items == nil {
				return fmt.Errorf("%s: not a module", module)
			}
			return a.printItems(cmd.OutOrStdout(), items)
		}
		prefix, _ := cmd.Flags().GetString("prefix")
		items, err := a.engine.Imports(cmd.Context(), prefix)
		if err != nil {
			return err
		}
		return a.printItems(cmd.OutOrStdout(), items)
	}
	return cmd
}
