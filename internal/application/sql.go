package application

const getAllApplicationsSQL = `
SELECT application_id, app_name, app_uuid, description, created_date
FROM application
ORDER BY app_name
`

const getApplicationSQL = `
SELECT application_id, app_name, app_uuid, description, created_date
FROM application
WHERE application_id = ?
`

const getApplicationByNameSQL = `
SELECT application_id, app_name, app_uuid, description, created_date
FROM application
WHERE app_name = ?
`

const getApplicationByUUIDSQL = `
SELECT application_id, app_name, app_uuid, description, created_date
FROM application
WHERE app_uuid = ?
`

const createApplicationSQL = `
INSERT INTO application (app_name, app_uuid, description)
VALUES (?, ?, ?)
`

const updateApplicationSQL = `
UPDATE application
SET app_name = ?, app_uuid = ?, description = ?
WHERE application_id = ?
`

const deleteApplicationSQL = `
DELETE FROM application
WHERE application_id = ?
`
