package application

type Application struct {
	ApplicationID int64  `db:"application_id" json:"applicationId"`
	AppName       string `db:"app_name" json:"appName"`
	AppUUID       string `db:"app_uuid" json:"appUuid"`
	Description   string `db:"description" json:"description"`
	CreatedDate   string `db:"created_date" json:"createdDate"`
}
