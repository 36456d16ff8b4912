package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/piwi3910/RodCut/internal/export"
	"github.com/piwi3910/RodCut/internal/model"
	"github.com/piwi3910/RodCut/internal/project"
)

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or create the config file",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the effective config as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(cfg)
		},
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(flagConfig); err == nil && !force {
				return fmt.Errorf("%s exists; use --force to overwrite", flagConfig)
			}
			if err := project.SaveAppConfig(flagConfig, model.DefaultAppConfig()); err != nil {
				return err
			}
			okColor.Printf("wrote %s\n", flagConfig)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config")

	cmd.AddCommand(show, initCmd)
	return cmd
}

func templateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Manage reusable cut lists",
	}
	path := project.DefaultTemplatePath()

	list := &cobra.Command{
		Use:   "list",
		Short: "List saved templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := project.LoadTemplates(path)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tCUTS\tPIECES\tDESCRIPTION")
			for _, t := range store.Templates {
				pieces := 0
				for _, c := range t.Cuts {
					pieces += c.Quantity
				}
				fmt.Fprintf(tw, "%s\t%d\t%d\t%s\n", t.Name, len(t.Cuts), pieces, t.Description)
			}
			return tw.Flush()
		},
	}

	var (
		in          inputFlags
		description string
	)
	save := &cobra.Command{
		Use:   "save NAME",
		Short: "Save the given job as a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			job, err := in.load(cmd, cfg, newLogger(false))
			if err != nil {
				return err
			}
			store, err := project.LoadTemplates(path)
			if err != nil {
				return err
			}
			if existing := store.FindByName(args[0]); existing != nil {
				store.Remove(existing.ID)
			}
			store.Add(model.NewJobTemplate(args[0], description, job))
			if err := project.SaveTemplates(path, store); err != nil {
				return err
			}
			okColor.Printf("saved template %q\n", args[0])
			return nil
		},
	}
	in.register(save)
	save.Flags().StringVar(&description, "description", "", "Template description")

	remove := &cobra.Command{
		Use:   "delete NAME",
		Short: "Delete a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := project.LoadTemplates(path)
			if err != nil {
				return err
			}
			t := store.FindByName(args[0])
			if t == nil {
				return fmt.Errorf("template %q not found", args[0])
			}
			store.Remove(t.ID)
			return project.SaveTemplates(path, store)
		},
	}

	cmd.AddCommand(list, save, remove)
	return cmd
}

func inventoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inventory",
		Short: "Show stock presets and saved leftovers",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			inv, path, err := project.LoadOrCreateInventory()
			if err != nil {
				return err
			}
			dimColor.Printf("%s\n\n", path)

			tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "STOCK\tLENGTH\tMATERIAL")
			for _, s := range inv.Stocks {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", s.Name, export.FormatLength(s.Length, cfg.Unit), s.Material)
			}
			fmt.Fprintln(tw, "\t\t")
			fmt.Fprintln(tw, "LEFTOVER\tLENGTH\tQUANTITY")
			for _, l := range inv.Leftovers {
				fmt.Fprintf(tw, "%s\t%s\t%d\n", l.Label, export.FormatLength(l.Length, cfg.Unit), l.Quantity)
			}
			return tw.Flush()
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear-leftovers",
		Short: "Remove all saved leftovers",
		RunE: func(cmd *cobra.Command, args []string) error {
			inv, path, err := project.LoadOrCreateInventory()
			if err != nil {
				return err
			}
			inv.Leftovers = []model.RodSpec{}
			return project.SaveInventory(path, inv)
		},
	}

	cmd.AddCommand(clearCmd)
	return cmd
}

func backupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Export or import config, inventory and templates",
	}

	exportCmd := &cobra.Command{
		Use:   "export FILE",
		Short: "Write a backup file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			inv, _, err := project.LoadOrCreateInventory()
			if err != nil {
				return err
			}
			templates, err := project.LoadTemplates(project.DefaultTemplatePath())
			if err != nil {
				return err
			}
			if err := project.ExportAllData(args[0], cfg, inv, templates); err != nil {
				return err
			}
			okColor.Printf("wrote %s\n", args[0])
			return nil
		},
	}

	var merge bool
	importCmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Restore a backup file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			backup, err := project.ImportAllData(args[0])
			if err != nil {
				return err
			}
			invPath, err := project.DefaultInventoryPath()
			if err != nil {
				return err
			}

			inv := backup.Inventory
			if merge {
				existing, err := project.LoadInventory(invPath)
				if err != nil {
					return err
				}
				inv = project.MergeInventory(existing, backup.Inventory)
			}

			if err := project.SaveAppConfig(flagConfig, backup.Config); err != nil {
				return err
			}
			if err := project.SaveInventory(invPath, inv); err != nil {
				return err
			}
			if err := project.SaveTemplates(project.DefaultTemplatePath(), backup.Templates); err != nil {
				return err
			}
			okColor.Printf("restored backup from %s\n", backup.CreatedAt)
			return nil
		},
	}
	importCmd.Flags().BoolVar(&merge, "merge", false, "Merge the inventory instead of replacing it")

	cmd.AddCommand(exportCmd, importCmd)
	return cmd
}
