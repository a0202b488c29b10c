package cache

import "github.com/google/uuid"

const (
	recommendationPrefix = "recommend:user:"
	interviewPrefix      = "interview:session:"
)

func RecommendationKey(userID uuid.UUID) string {
	return recommendationPrefix + userID.String()
}

// RecommendationPattern matches every cached recommendation list.
func RecommendationPattern() string {
	return recommendationPrefix + "*"
}

func InterviewSessionKey(id string) string {
	return interviewPrefix + id
}

// ReindexLockKey guards the candidate reindex job against concurrent runs.
const ReindexLockKey = "lock:reindex:candidates"
