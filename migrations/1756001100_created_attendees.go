package migrations

import (
	"encoding/json"

	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
)

func init() {
	m.Register(func(app core.App) error {
		jsonData := `{
			"id": "att4groovava001",
			"name": "attendees",
			"type": "base",
			"system": false,
			"fields": [
				{
					"name": "user_id",
					"type": "relation",
					"required": true,
					"collectionId": "_pb_users_auth_",
					"cascadeDelete": true,
					"maxSelect": 1
				},
				{
					"name": "event_id",
					"type": "relation",
					"required": true,
					"collectionId": "evt4groovava001",
					"cascadeDelete": true,
					"maxSelect": 1
				},
				{
					"name": "created",
					"type": "autodate",
					"onCreate": true,
					"onUpdate": false
				}
			],
			"indexes": [
				"CREATE UNIQUE INDEX idx_attendees_user_event ON attendees (user_id, event_id)"
			],
			"listRule": "user_id = @request.auth.id",
			"viewRule": "user_id = @request.auth.id",
			"createRule": "user_id = @request.auth.id",
			"updateRule": null,
			"deleteRule": "user_id = @request.auth.id"
		}`

		collection := &core.Collection{}
		if err := json.Unmarshal([]byte(jsonData), collection); err != nil {
			return err
		}

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("att4groovava001")
		if err != nil {
			return err
		}

		return app.Delete(collection)
	})
}
