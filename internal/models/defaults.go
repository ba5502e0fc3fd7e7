package models

// DefaultQuestions returns the seed question bank a fresh install starts
// with. Mastery seeds sit in the 0.3-0.6 band so the recommendation weights
// have something to work with before any attempts are recorded.
func DefaultQuestions() []Question {
	return []Question{
		{
			ID:            "q001",
			Subject:       []string{"math", "quadratic_functions"},
			Difficulty:    DifficultyEasy,
			Stem:          "What is the axis of symmetry of f(x) = x² - 4x + 3?",
			Options:       []string{"x = 1", "x = 2", "x = 3", "x = 4"},
			Answer:        1,
			Explanation:   "For f(x) = ax² + bx + c the axis of symmetry is x = -b/(2a). Here a=1, b=-4, so x = -(-4)/(2×1) = 2.",
			Mastery:       0.3,
			Tags:          []string{"quadratic_functions", "axis_of_symmetry"},
			EstimatedTime: 60,
		},
		{
			ID:            "q002",
			Subject:       []string{"physics", "mechanics"},
			Difficulty:    DifficultyMedium,
			Stem:          "An object falls freely from height h. Its speed on landing is?",
			Options:       []string{"√(gh)", "√(2gh)", "2√(gh)", "√(gh/2)"},
			Answer:        1,
			Explanation:   "By conservation of energy mgh = ½mv², so v = √(2gh).",
			Mastery:       0.4,
			Tags:          []string{"free_fall", "energy_conservation"},
			EstimatedTime: 90,
		},
		{
			ID:         "q003",
			Subject:    []string{"english", "grammar"},
			Difficulty: DifficultyMedium,
			Stem:       "Choose the correct sentence:",
			Options: []string{
				"He don't like apples.",
				"He doesn't likes apples.",
				"He doesn't like apples.",
				"He not like apples.",
			},
			Answer:        2,
			Explanation:   "Third-person singular negatives use \"doesn't\" followed by the base verb.",
			Mastery:       0.5,
			Tags:          []string{"third_person_singular", "negation"},
			EstimatedTime: 45,
		},
		{
			ID:            "q004",
			Subject:       []string{"chemistry", "atomic_structure"},
			Difficulty:    DifficultyHard,
			Stem:          "The first ionization energy of hydrogen is approximately how many eV?",
			Options:       []string{"10.8", "13.6", "15.4", "17.2"},
			Answer:        1,
			Explanation:   "Removing the ground-state electron from hydrogen takes about 13.6 eV.",
			Mastery:       0.35,
			Tags:          []string{"ionization_energy", "hydrogen"},
			EstimatedTime: 120,
		},
		{
			ID:            "q005",
			Subject:       []string{"math", "trigonometry"},
			Difficulty:    DifficultyMedium,
			Stem:          "sin²θ + cos²θ is always equal to?",
			Options:       []string{"0", "1", "2", "sinθ"},
			Answer:        1,
			Explanation:   "The Pythagorean identity holds for every angle θ.",
			Mastery:       0.6,
			Tags:          []string{"trig_identities"},
			EstimatedTime: 30,
		},
	}
}

func DefaultSettings() Settings {
	return Settings{
		Profile: ProfileSettings{
			DisplayName: "Learner",
			StudyLevel:  "highschool",
			Subjects:    []string{"math", "physics", "chemistry", "english"},
		},
		Appearance: AppearanceSettings{
			Theme:        "dark",
			FontSize:     "medium",
			Animations:   true,
			SoundEffects: true,
		},
		Notifications: NotificationSettings{
			StudyReminder:   true,
			GoalAchievement: true,
			ReviewReminder:  true,
			WeeklyReport:    false,
			ReminderTime:    "19:00",
		},
		Advanced: AdvancedSettings{
			EwmaAlpha:            0.15,
			DifficultyFactor:     1.2,
			ForgettingCurve:      0.7,
			RecentWindowMinutes:  120,
			MasteryExitThreshold: 0.7,
			AIRecommendation:     false,
		},
	}
}

func DefaultUserStats() UserStats {
	return UserStats{}
}

func DefaultGoals() Goals {
	return Goals{
		Daily: DailyGoals{
			Questions: 30,
			StudyTime: 45,
			Accuracy:  75,
		},
		LongTerm: []string{},
	}
}
