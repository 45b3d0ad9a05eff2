package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rpgo/household-planner/internal/config"
	"github.com/rpgo/household-planner/internal/output"
)

var scenariosCmd = &cobra.Command{
	Use:   "scenarios",
	Short: "Manage the saved household library",
}

var scenariosSaveCmd = &cobra.Command{
	Use:   "save <name> <household-file>",
	Short: "Save a household file under a name, replacing any existing entry",
	Args:  cobra.ExactArgs(2),
	RunE:  runScenariosSave,
}

var scenariosListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved households",
	Args:  cobra.NoArgs,
	RunE:  runScenariosList,
}

var scenariosShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Print a saved household as YAML",
	Args:  cobra.ExactArgs(1),
	RunE:  runScenariosShow,
}

var scenariosDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a saved household",
	Args:  cobra.ExactArgs(1),
	RunE:  runScenariosDelete,
}

func init() {
	scenariosCmd.AddCommand(scenariosSaveCmd, scenariosListCmd, scenariosShowCmd, scenariosDeleteCmd)
	rootCmd.AddCommand(scenariosCmd)
}

func runScenariosSave(cmd *cobra.Command, args []string) error {
	h, err := newParser().LoadFromFile(args[1])
	if err != nil {
		return err
	}
	lib, err := openLibrary()
	if err != nil {
		return err
	}
	defer lib.Close()

	id, err := lib.Save(args[0], h)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved %s (%s)\n", args[0], id)
	return nil
}

func runScenariosList(cmd *cobra.Command, _ []string) error {
	lib, err := openLibrary()
	if err != nil {
		return err
	}
	defer lib.Close()

	entries, err := lib.List()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(entries) == 0 {
		fmt.Fprintln(out, "No saved households. Use `scenarios save <name> <file>` to add one.")
		return nil
	}
	t := output.Table{Headers: []string{"Name", "Persons", "Dependents", "Start Year", "Updated"}}
	for _, e := range entries {
		t.Rows = append(t.Rows, []string{
			e.Name,
			fmt.Sprint(e.Persons),
			fmt.Sprint(e.Dependents),
			fmt.Sprint(e.CurrentYear),
			e.UpdatedAt.Local().Format("2006-01-02 15:04"),
		})
	}
	fmt.Fprint(out, output.RenderTable(t))
	return nil
}

func runScenariosShow(cmd *cobra.Command, args []string) error {
	lib, err := openLibrary()
	if err != nil {
		return err
	}
	defer lib.Close()

	h, err := lib.Load(args[0])
	if err != nil {
		return err
	}
	format := config.FormatYAML
	if output.NormalizeFormatName(settings.General.OutputFormat) == "json" {
		format = config.FormatJSON
	}
	data, err := newParser().Marshal(h, format)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func runScenariosDelete(cmd *cobra.Command, args []string) error {
	lib, err := openLibrary()
	if err != nil {
		return err
	}
	defer lib.Close()

	if err := lib.Delete(args[0]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
	return nil
}
