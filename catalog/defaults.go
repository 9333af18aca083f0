package catalog

// Default is the built-in activity table.
var Default = MustNew(DefaultEntries())

// DefaultEntries returns the built-in emission factors.
func DefaultEntries() []Entry {
	return []Entry{
		// Transport (kg CO2e per km)
		{ID: "flight", Category: CategoryTransport, Name: "Flight", CarbonPerUnit: 0.255, Unit: "km", Description: "Air travel emissions", IsEmission: true},
		{ID: "car", Category: CategoryTransport, Name: "Car", CarbonPerUnit: 0.24, Unit: "km", Description: "Car travel", IsEmission: true},
		{ID: "bike_motor", Category: CategoryTransport, Name: "Motorcycle", CarbonPerUnit: 0.09, Unit: "km", Description: "Motorcycle/scooter ride", IsEmission: true},
		{ID: "auto_rickshaw", Category: CategoryTransport, Name: "Auto-rickshaw", CarbonPerUnit: 0.21, Unit: "km", Description: "Auto-rickshaw ride", IsEmission: true},
		{ID: "bus", Category: CategoryTransport, Name: "Bus", CarbonPerUnit: -0.18, Unit: "km", Description: "Public transport (avoided car emissions)"},
		{ID: "walk", Category: CategoryTransport, Name: "Walking", CarbonPerUnit: -0.24, Unit: "km", Description: "Walking instead of driving"},
		{ID: "bicycle", Category: CategoryTransport, Name: "Cycling", CarbonPerUnit: -0.24, Unit: "km", Description: "Cycling instead of driving"},

		// Devices (kg CO2e per hour)
		{ID: "phone_usage", Category: CategoryDevice, Name: "Phone Usage", CarbonPerUnit: 0.02, Unit: "hours", Description: "Smartphone usage and charging", IsEmission: true},
		{ID: "laptop_usage", Category: CategoryDevice, Name: "Laptop Usage", CarbonPerUnit: 0.10, Unit: "hours", Description: "Laptop usage", IsEmission: true},
		{ID: "gaming", Category: CategoryDevice, Name: "Gaming", CarbonPerUnit: 0.25, Unit: "hours", Description: "Gaming console or PC", IsEmission: true},
		{ID: "ac_usage", Category: CategoryDevice, Name: "Air Conditioner", CarbonPerUnit: 1.60, Unit: "hours", Description: "AC usage", IsEmission: true},
		{ID: "fan_usage", Category: CategoryDevice, Name: "Fan", CarbonPerUnit: 0.075, Unit: "hours", Description: "Fan usage", IsEmission: true},

		// Food (kg CO2e per meal)
		{ID: "non_veg_meal", Category: CategoryFood, Name: "Non-Veg Meal", CarbonPerUnit: 4.0, Unit: "meal", Description: "Meal with meat", IsEmission: true},
		{ID: "vegetarian_meal", Category: CategoryFood, Name: "Vegetarian Meal", CarbonPerUnit: -2.0, Unit: "meal", Description: "Vegetarian meal (avoided emissions)"},
		{ID: "vegan_meal", Category: CategoryFood, Name: "Vegan Meal", CarbonPerUnit: -2.5, Unit: "meal", Description: "Vegan meal (avoided emissions)"},
		{ID: "food_delivery", Category: CategoryFood, Name: "Food Delivery", CarbonPerUnit: 1.2, Unit: "order", Description: "Online food delivery", IsEmission: true},

		// Lifestyle and waste
		{ID: "printed_pages", Category: CategoryLifestyle, Name: "Printing", CarbonPerUnit: 0.005, Unit: "pages", Description: "Printed documents", IsEmission: true},
		{ID: "plastic_bottle", Category: CategoryLifestyle, Name: "Plastic Bottle", CarbonPerUnit: 0.12, Unit: "bottle", Description: "Single-use plastic bottle", IsEmission: true},
		{ID: "laundry", Category: CategoryLifestyle, Name: "Laundry Wash", CarbonPerUnit: 0.6, Unit: "wash", Description: "Washing machine cycle", IsEmission: true},
		{ID: "long_shower", Category: CategoryLifestyle, Name: "Long Shower", CarbonPerUnit: 0.3, Unit: "shower", Description: "Extended hot water shower", IsEmission: true},

		// Green actions
		{ID: "plant_tree", Category: CategoryGreen, Name: "Plant a Tree", CarbonPerUnit: -20, Unit: "tree", Description: "Planted a tree (annual absorption)"},
		{ID: "water_saving", Category: CategoryGreen, Name: "Water Saving", CarbonPerUnit: -0.02, Unit: "liters", Description: "Water saved"},
		{ID: "composting", Category: CategoryGreen, Name: "Composting", CarbonPerUnit: -1.2, Unit: "kg", Description: "Composted organic waste"},
		{ID: "campus_cleanup", Category: CategoryGreen, Name: "Campus Cleanup", CarbonPerUnit: -0.3, Unit: "kg", Description: "Waste collected in cleanup"},

		// Student tasks
		{ID: "digital_notes", Category: CategoryStudent, Name: "Digital Notes", CarbonPerUnit: -0.2, Unit: "day", Description: "Used digital notes instead of printing"},
		{ID: "library_book", Category: CategoryStudent, Name: "Library Book", CarbonPerUnit: -1.0, Unit: "book", Description: "Borrowed from library instead of buying"},
		{ID: "online_class", Category: CategoryStudent, Name: "Online Class", CarbonPerUnit: -2.5, Unit: "class", Description: "Attended online instead of commuting"},

		// Home energy (kg CO2e per kWh)
		{ID: "grid_electricity", Category: CategoryEnergy, Name: "Grid Electricity", CarbonPerUnit: 0.233, Unit: "kWh", Description: "Electricity from the grid", IsEmission: true},
		{ID: "natural_gas", Category: CategoryEnergy, Name: "Natural Gas", CarbonPerUnit: 0.202, Unit: "kWh", Description: "Gas heating or cooking", IsEmission: true},
		{ID: "solar_power", Category: CategoryEnergy, Name: "Solar Power", CarbonPerUnit: -0.233, Unit: "kWh", Description: "Self-generated solar instead of grid"},
		{ID: "wind_power", Category: CategoryEnergy, Name: "Wind Power", CarbonPerUnit: -0.233, Unit: "kWh", Description: "Wind tariff instead of grid"},
	}
}
