package main

import (
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/muhammadolammi/resumeascode/internal/resume"
)

var listProfilesCmd = &cobra.Command{
	Use:   "list-profiles",
	Short: "List all available resume profiles",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p := present(cmd)
		profiles, err := resume.ListProfiles(dataDir())
		if err != nil {
			return err
		}
		if len(profiles) == 0 {
			p.Warning("No profiles found. Create profiles in " + filepath.Join(dataDir(), resume.ProfilesDir))
			return nil
		}
		rows := make([][]string, 0, len(profiles))
		for _, name := range profiles {
			rows = append(rows, []string{name})
		}
		p.Table("Available Profiles", []string{"Profile"}, rows)
		return nil
	},
}

var addSkillCmd = &cobra.Command{
	Use:   "add-skill <name>",
	Short: "Add a new skill to the common skills list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p := present(cmd)
		category, _ := cmd.Flags().GetString("category")
		proficiency, _ := cmd.Flags().GetString("proficiency")

		skill := resume.Skill{Name: args[0], Category: category, Proficiency: proficiency}
		err := resume.AddSkill(dataDir(), skill)
		if errors.Is(err, resume.ErrSkillExists) {
			p.Warning("Skill '" + skill.Name + "' already exists in resume")
			return nil
		}
		if err != nil {
			return err
		}
		p.Success("Added skill '" + skill.Name + "' (" + category + " - " + proficiency + ")")
		return nil
	},
}

func init() {
	addSkillCmd.Flags().StringP("category", "c", "General", "Skill category")
	addSkillCmd.Flags().StringP("proficiency", "p", "Intermediate", "Proficiency level")
}
