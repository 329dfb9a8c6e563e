package models

// All lists every persisted model in migration order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Session{},
		&Habit{},
		&HabitCompletion{},
		&NutritionLog{},
		&WeightLog{},
		&WeightGoal{},
		&MediaUpload{},
		&Achievement{},
		&UserAchievement{},
		&ActivityLog{},
		&FriendEdge{},
		&Competition{},
		&CompetitionParticipant{},
		&SocialChallenge{},
		&ChallengeParticipant{},
		&ChallengeInvitation{},
		&DailyChallenge{},
		&DailyChallengeCompletion{},
	}
}
