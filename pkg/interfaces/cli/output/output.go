package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"mrp-multilevel/pkg/application/dto"
	"mrp-multilevel/pkg/domain/entities"
)

// Config holds configuration for output generation
type Config struct {
	Format    string
	OutputDir string
	Verbose   bool
}

// Generate creates output in the specified format
func Generate(result *dto.RunResult, config Config) error {
	switch config.Format {
	case "text":
		return generateTextOutput(result, config)
	case "json":
		return generateJSONOutput(result, config)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

// generateTextOutput creates human-readable text output
func generateTextOutput(result *dto.RunResult, config Config) error {
	fmt.Printf("📊 MRP Run Summary\n")
	fmt.Printf("==================\n\n")

	fmt.Printf("Run ID: %s\n", result.RunID)
	fmt.Printf("Planning Date: %s\n", result.PlanningDate.Format("2006-01-02"))
	fmt.Printf("Levels: %d\n", result.Stats.Levels)
	fmt.Printf("Products Planned: %d\n", result.Stats.ProductsPlanned)
	fmt.Printf("Moves Created: %d\n", result.Stats.MovesCreated)
	fmt.Printf("Orders Proposed: %d\n", result.Stats.OrdersProposed)
	fmt.Printf("Elapsed: %v\n\n", result.Stats.Elapsed)

	proposed := proposedOrders(result.Moves)
	if len(proposed) > 0 {
		fmt.Printf("📋 Proposed Orders:\n")
		fmt.Printf("%-20s %-10s %-12s %-12s %-12s %-12s\n",
			"Product", "Area", "Qty", "Supply Date", "Action Date", "Action")
		fmt.Printf("%-20s %-10s %-12s %-12s %-12s %-12s\n",
			"--------------------", "----------", "------------", "------------", "------------", "------------")

		for _, mv := range proposed {
			fmt.Printf("%-20s %-10s %-12s %-12s %-12s %-12s\n",
				mv.ProductID,
				mv.AreaID,
				mv.Qty.String(),
				mv.Date.Format("2006-01-02"),
				mv.ActionDate.Format("2006-01-02"),
				mv.Action.String())
		}
		fmt.Println()
	}

	if config.Verbose && len(result.Products) > 0 {
		fmt.Printf("🧮 Planning Units:\n")
		fmt.Printf("%-20s %-10s %-5s %-12s %-8s %-8s\n",
			"Product", "Area", "LLC", "On Hand", "Actions", "4 Weeks")
		fmt.Printf("%-20s %-10s %-5s %-12s %-8s %-8s\n",
			"--------------------", "----------", "-----", "------------", "--------", "--------")

		for _, mp := range result.Products {
			fmt.Printf("%-20s %-10s %-5d %-12s %-8d %-8d\n",
				mp.ProductID,
				mp.AreaID,
				mp.LLC,
				mp.QtyAvailable.String(),
				mp.NbrActions,
				mp.NbrActions4W)
		}
		fmt.Println()
	}

	return nil
}

// generateJSONOutput writes the full run result as JSON, to the output
// directory if configured, to stdout otherwise
func generateJSONOutput(result *dto.RunResult, config Config) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	if config.OutputDir == "" {
		fmt.Println(string(data))
		return nil
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(config.OutputDir, fmt.Sprintf("mrp_run_%s.json", result.RunID))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write JSON output: %w", err)
	}

	if config.Verbose {
		fmt.Printf("JSON results written to: %s\n", path)
	}
	return nil
}

func proposedOrders(moves []*entities.MrpMove) []*entities.MrpMove {
	var proposed []*entities.MrpMove
	for _, mv := range moves {
		if mv.Action != entities.ActionNone {
			proposed = append(proposed, mv)
		}
	}
	return proposed
}
