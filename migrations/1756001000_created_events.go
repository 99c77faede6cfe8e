package migrations

import (
	"encoding/json"

	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
)

func init() {
	m.Register(func(app core.App) error {
		jsonData := `{
			"id": "evt4groovava001",
			"name": "events",
			"type": "base",
			"system": false,
			"fields": [
				{
					"name": "title",
					"type": "text",
					"required": true,
					"presentable": true
				},
				{
					"name": "description",
					"type": "text",
					"required": false
				},
				{
					"name": "location",
					"type": "text",
					"required": false
				},
				{
					"name": "venue",
					"type": "text",
					"required": false
				},
				{
					"name": "date",
					"type": "text",
					"required": false
				},
				{
					"name": "time",
					"type": "text",
					"required": false
				},
				{
					"name": "organizer",
					"type": "text",
					"required": false
				},
				{
					"name": "category",
					"type": "text",
					"required": false
				},
				{
					"name": "image",
					"type": "url",
					"required": false
				},
				{
					"name": "price",
					"type": "text",
					"required": false
				},
				{
					"name": "creator_id",
					"type": "relation",
					"required": false,
					"collectionId": "_pb_users_auth_",
					"cascadeDelete": false,
					"maxSelect": 1
				},
				{
					"name": "created",
					"type": "autodate",
					"onCreate": true,
					"onUpdate": false
				},
				{
					"name": "updated",
					"type": "autodate",
					"onCreate": true,
					"onUpdate": true
				}
			],
			"indexes": [],
			"listRule": "",
			"viewRule": "",
			"createRule": "@request.auth.id != \"\"",
			"updateRule": "creator_id = @request.auth.id",
			"deleteRule": "creator_id = @request.auth.id"
		}`

		collection := &core.Collection{}
		if err := json.Unmarshal([]byte(jsonData), collection); err != nil {
			return err
		}

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("evt4groovava001")
		if err != nil {
			return err
		}

		return app.Delete(collection)
	})
}
