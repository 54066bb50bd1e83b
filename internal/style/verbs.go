package style

var actionVerbs = map[string][]string{
	"leadership":    {"Led", "Directed", "Managed", "Orchestrated", "Coordinated", "Spearheaded", "Pioneered", "Championed"},
	"technical":     {"Architected", "Engineered", "Developed", "Implemented", "Built", "Designed", "Programmed", "Automated"},
	"improvement":   {"Optimized", "Enhanced", "Improved", "Streamlined", "Refined", "Upgraded", "Modernized", "Accelerated"},
	"analysis":      {"Analyzed", "Evaluated", "Assessed", "Investigated", "Diagnosed", "Researched", "Measured", "Monitored"},
	"collaboration": {"Collaborated", "Partnered", "Facilitated", "Mentored", "Trained", "Coached", "Advised", "Consulted"},
	"achievement":   {"Achieved", "Delivered", "Reduced", "Increased", "Eliminated", "Generated", "Saved", "Exceeded"},
}

var verbCategories = []string{"leadership", "technical", "improvement", "analysis", "collaboration", "achievement"}

// Categories lists the action verb categories in a stable order.
func Categories() []string {
	return append([]string(nil), verbCategories...)
}

// ActionVerbs returns the verbs for category, or nil for an unknown category.
func ActionVerbs(category string) []string {
	return append([]string(nil), actionVerbs[category]...)
}

// AllActionVerbs returns every verb, grouped by category order.
func AllActionVerbs() []string {
	var all []string
	for _, c := range verbCategories {
		all = append(all, actionVerbs[c]...)
	}
	return all
}
