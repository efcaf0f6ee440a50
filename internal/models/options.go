package models

// Input option catalogs for the setup form. Free text is accepted too; these
// are the choices the UI offers.
var (
	Goals = []string{
		"Fat loss", "General fitness", "Strength",
		"Hypertrophy", "Endurance", "Mobility/Recovery",
	}

	Environments = []string{"Gym", "Home"}

	Levels = []string{"Beginner", "Intermediate", "Advanced"}

	EquipmentPool = []string{
		"Bodyweight", "Mat", "Bands", "Dumbbells", "Kettlebell", "Barbell",
		"Bench", "Pull-up Bar", "Cable/Machines", "Jump Rope",
		"Treadmill", "Bike", "Rower", "Elliptical",
	}

	ConstraintPool = []string{
		"Low-impact only",
		"Protect knees",
		"Protect shoulders",
		"Protect back",
		"No jumping",
		"Small space / no running",
	}

	Voices = []string{"alloy", "echo", "fable", "onyx", "nova", "shimmer"}
)
