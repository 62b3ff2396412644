package handlers

import (
	"github.com/avenmora/lenspark/backend/internal/models"
	"github.com/avenmora/lenspark/backend/internal/repositories"
)

// compactAuthors loads the compact author records for a set of author
// ids, deduplicated, keyed by id
func compactAuthors(userRepo repositories.UserRepository, authorIDs []string) (map[string]models.UserCompact, error) {
	seen := make(map[string]bool)
	var unique []string
	for _, id := range authorIDs {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}

	users, err := userRepo.GetUsersByIDs(unique)
	if err != nil {
		return nil, err
	}

	authors := make(map[string]models.UserCompact, len(users))
	for i := range users {
		authors[users[i].ID] = users[i].ToCompact()
	}
	return authors, nil
}
