package repository

import (
	"go.mongodb.org/mongo-driver/mongo/options"
)

func mongoReplaceUpsert() *options.ReplaceOptions {
	return options.Replace().SetUpsert(true)
}
