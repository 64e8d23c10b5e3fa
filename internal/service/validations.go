package service

import (
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/limbo/wellspring/pkg/entity"
)

// Package for custom validations
var (
	validate *validator.Validate
	once     sync.Once
)

var reminderTypes = map[string]struct{}{
	entity.TypeHabit:         {},
	entity.TypeMeditation:    {},
	entity.TypeExercise:      {},
	entity.TypeMindfulEating: {},
	entity.TypeBreak:         {},
	entity.TypeCustom:        {},
}

var reminderFrequencies = map[string]struct{}{
	entity.FrequencyOneTime: {},
	entity.FrequencyHourly:  {},
	entity.FrequencyDaily:   {},
	entity.FrequencyWeekly:  {},
	entity.FrequencyMonthly: {},
}

func InitValidator() {
	once.Do(func() {
		validate = validator.New()
		validate.RegisterValidation("reminder_type", func(fl validator.FieldLevel) bool {
			_, ok := reminderTypes[fl.Field().String()]
			return ok
		})
		validate.RegisterValidation("reminder_frequency", func(fl validator.FieldLevel) bool {
			_, ok := reminderFrequencies[fl.Field().String()]
			return ok
		})
	})
}
