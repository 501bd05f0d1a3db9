package catalog

import "github.com/Lixing-Zhang/menu-builder/internal/models"

// Seed returns the predefined dishes offered on the browse screen
func Seed() []models.Dish {
	return []models.Dish{
		{ID: "1", Name: "Blueberry Waffles", Description: "Crispy waffles with blueberries & syrup", Course: models.CourseBreakfast, Price: "95.00"},
		{ID: "2", Name: "Avocado Toast", Description: "Toasted bread with smashed avocado & eggs", Course: models.CourseBreakfast, Price: "110.00"},
		{ID: "3", Name: "Tropical Smoothie Bowl", Description: "Fresh fruits, coconut, and granola", Course: models.CourseBreakfast, Price: "120.00"},
		{ID: "4", Name: "Morning Wrap", Description: "Eggs, cheese, and veggies in a tortilla", Course: models.CourseBreakfast, Price: "130.00"},

		{ID: "5", Name: "Grilled Salmon", Description: "Served with lemon butter and vegetables", Course: models.CourseMains, Price: "290"},
		{ID: "6", Name: "Ocean Pasta", Description: "Seafood pasta with creamy garlic sauce", Course: models.CourseMains, Price: "270"},
		{ID: "7", Name: "Chicken Alfredo", Description: "Creamy fettuccine with grilled chicken", Course: models.CourseMains, Price: "240"},
		{ID: "8", Name: "Beef Burger Deluxe", Description: "Juicy burger with cheese and fries", Course: models.CourseMains, Price: "220"},

		{ID: "9", Name: "Mango Sorbet", Description: "Light and fresh tropical dessert", Course: models.CourseDesserts, Price: "80"},
		{ID: "10", Name: "Coconut Tart", Description: "Coconut cream tart with caramel drizzle", Course: models.CourseDesserts, Price: "100"},
		{ID: "11", Name: "Ocean Breeze Cake", Description: "Vanilla cake with sea-salt caramel", Course: models.CourseDesserts, Price: "130"},
		{ID: "12", Name: "Pineapple Delight", Description: "Pineapple mousse with biscuit base", Course: models.CourseDesserts, Price: "95"},
	}
}
