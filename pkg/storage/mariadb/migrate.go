package mariadb

import "database/sql"

// schema holds the bootstrap DDL. patient_id carries a UNIQUE constraint so
// code generation can rely on the store rejecting a duplicate suffix.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS hospitals (
		id INT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		subscription VARCHAR(16) NOT NULL DEFAULT 'active'
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id INT AUTO_INCREMENT PRIMARY KEY,
		username VARCHAR(100) NOT NULL UNIQUE,
		password VARCHAR(255) NOT NULL,
		role VARCHAR(32) NOT NULL,
		hospital_id INT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS doctors (
		id INT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		hospital_id INT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS counsellors (
		id INT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		hospital_id INT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS procedures (
		id INT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS iol_types (
		id INT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS patients (
		id INT AUTO_INCREMENT PRIMARY KEY,
		patient_id VARCHAR(16) NOT NULL UNIQUE,
		name VARCHAR(255) NOT NULL,
		phone VARCHAR(32) NOT NULL,
		city VARCHAR(128) NOT NULL,
		age INT NOT NULL,
		gender VARCHAR(16) NOT NULL,
		vision_od VARCHAR(8) NOT NULL,
		vision_os VARCHAR(8) NOT NULL,
		` + "`procedure`" + ` VARCHAR(128) NOT NULL,
		iol VARCHAR(128) NULL,
		doctor VARCHAR(255) NOT NULL,
		counsellor VARCHAR(255) NOT NULL,
		cost DECIMAL(12,2) NOT NULL DEFAULT 0,
		status VARCHAR(16) NOT NULL DEFAULT 'Pending',
		created_on DATETIME NOT NULL,
		hospital_id INT NOT NULL,
		INDEX idx_patients_hospital (hospital_id),
		INDEX idx_patients_status (hospital_id, status)
	)`,
}

// Migrate creates the tables if they do not exist yet.
func Migrate(db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
