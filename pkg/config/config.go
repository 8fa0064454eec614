package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort      string
	Environment     string
	FirebaseProject string
	FirebaseAPIKey  string
	StorageBucket   string

	DatabaseID string

	// One collection per entity type. All of them are required: the
	// service cannot resolve a single query without the full set.
	UsersCollection         string
	PostsCollection         string
	CommentsCollection      string
	SavesCollection         string
	SubscribersCollection   string
	ChatsCollection         string
	MessagesCollection      string
	StoriesCollection       string
}

func Load() (*Config, error) {
	godotenv.Load()

	config := &Config{
		ServerPort:  getEnv("SERVER_PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
	}

	var err error
	required := []struct {
		key  string
		dest *string
	}{
		{"FIREBASE_PROJECT_ID", &config.FirebaseProject},
		{"FIREBASE_API_KEY", &config.FirebaseAPIKey},
		{"STORAGE_BUCKET", &config.StorageBucket},
		{"DATABASE_ID", &config.DatabaseID},
		{"USERS_COLLECTION_ID", &config.UsersCollection},
		{"POSTS_COLLECTION_ID", &config.PostsCollection},
		{"COMMENTS_COLLECTION_ID", &config.CommentsCollection},
		{"SAVES_COLLECTION_ID", &config.SavesCollection},
		{"SUBSCRIBERS_COLLECTION_ID", &config.SubscribersCollection},
		{"CHATS_COLLECTION_ID", &config.ChatsCollection},
		{"MESSAGES_COLLECTION_ID", &config.MessagesCollection},
		{"STORIES_COLLECTION_ID", &config.StoriesCollection},
	}

	for _, r := range required {
		if *r.dest, err = requireEnv(r.key); err != nil {
			return nil, err
		}
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func requireEnv(key string) (string, error) {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return "", fmt.Errorf("missing required environment variable %s", key)
	}
	return value, nil
}
