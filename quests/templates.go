package quests

// Default is the built-in template pool.
var Default = MustNewPool(DefaultTemplates())

func DefaultTemplates() []Quest {
	return []Quest{
		{ID: "log_one", Title: "First Step", Description: "Log any eco activity today", Icon: "🎯", Type: TypeCount, Requirement: Requirement{Target: 1}, Reward: 5, Difficulty: Easy},
		{ID: "log_three", Title: "Triple Threat", Description: "Log 3 activities today", Icon: "🔥", Type: TypeCount, Requirement: Requirement{Target: 3}, Reward: 15, Difficulty: Medium},
		{ID: "walk_today", Title: "Walk It Out", Description: "Log a walking or cycling activity", Icon: "🚶", Type: TypeCategory, Requirement: Requirement{Target: 1, Category: "transport", Action: "walk"}, Reward: 10, Difficulty: Easy},
		{ID: "veggie_meal", Title: "Green Plate", Description: "Log a vegetarian or vegan meal", Icon: "🥗", Type: TypeCategory, Requirement: Requirement{Target: 1, Category: "food", Action: "veg"}, Reward: 10, Difficulty: Easy},
		{ID: "public_transport", Title: "Public Rider", Description: "Use public transport today", Icon: "🚌", Type: TypeCategory, Requirement: Requirement{Target: 1, Category: "transport", Action: "bus"}, Reward: 12, Difficulty: Medium},
		{ID: "five_activities", Title: "Eco Champion", Description: "Log 5 activities today", Icon: "🏆", Type: TypeCount, Requirement: Requirement{Target: 5}, Reward: 25, Difficulty: Hard},
		{ID: "no_car", Title: "Car-Free Day", Description: "Log transport without using a car", Icon: "🚗❌", Type: TypeCategory, Requirement: Requirement{Target: 2, Category: "transport", Action: "nocar"}, Reward: 20, Difficulty: Medium},
		{ID: "green_action", Title: "Planet Helper", Description: "Complete a green action (recycle, plant, etc.)", Icon: "🌱", Type: TypeCategory, Requirement: Requirement{Target: 1, Category: "green"}, Reward: 15, Difficulty: Medium},
	}
}
