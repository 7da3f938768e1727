package config

import (
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// Config holds every tunable of the bot. It is built once at startup and
// never mutated afterwards; the start-delay clamp happens at session start.
type Config struct {
	Token string
	Guild string

	QuizLimit             int
	QuizStartTime         int
	QuizNextQuestionDelay int
	QuizBasePoint         int

	Channel string
	Admins  []string

	Cmds     string
	Messages string

	QuestionsPath string
	ScoresPath    string
}

// Default returns the option set the bot ships with.
func Default() Config {
	return Config{
		QuizLimit:             25,
		QuizStartTime:         15,
		QuizNextQuestionDelay: 5,
		QuizBasePoint:         5,
		Channel:               "game",
		QuestionsPath:         "./data/questions.json",
		ScoresPath:            "./data/scores.json",
	}
}

// Load merges the current values of config, an optional config file and
// QUIZBOT_* environment variables, config must be a pointer. file may be
// empty, in which case only the environment applies on top of the defaults.
func Load(file string, config *Config) error {
	v := viper.New()
	m := make(map[string]any)

	if err := mapstructure.Decode(config, &m); err != nil {
		return fmt.Errorf("mapstructure: %v", err)
	}

	if err := v.MergeConfigMap(m); err != nil {
		return fmt.Errorf("merge config map: %v", err)
	}

	v.SetEnvPrefix("quizbot")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config from file %s: %v", file, err)
		}
	}

	if err := v.Unmarshal(config); err != nil {
		return fmt.Errorf("unmarshal config: %v", err)
	}

	return nil
}
