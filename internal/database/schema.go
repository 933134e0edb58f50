package database

var schema = map[string][]string{
	DriverMySQL: {
		`CREATE TABLE IF NOT EXISTS users (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			username VARCHAR(100) NOT NULL,
			email VARCHAR(255) NOT NULL,
			role VARCHAR(32) NOT NULL,
			site VARCHAR(100) NOT NULL,
			password_hash VARCHAR(255) NOT NULL,
			created_at DATETIME NOT NULL,
			UNIQUE KEY uq_users_username_site (username, site),
			UNIQUE KEY uq_users_email_site (email, site)
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			order_number VARCHAR(64) NOT NULL UNIQUE,
			store_id VARCHAR(64) NOT NULL,
			email VARCHAR(255) NOT NULL,
			total_price BIGINT NOT NULL,
			currency VARCHAR(3) NOT NULL,
			shipping_method VARCHAR(32) NOT NULL,
			shipping_cost BIGINT NOT NULL,
			shipping_address TEXT NOT NULL,
			items TEXT NOT NULL,
			stripe_payment_id VARCHAR(255) NOT NULL,
			payment_status VARCHAR(32) NOT NULL,
			order_status VARCHAR(32) NOT NULL,
			printify_order_id VARCHAR(64) NULL,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			KEY idx_orders_number_email (order_number, email)
		)`,
		`CREATE TABLE IF NOT EXISTS blogs (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			site VARCHAR(100) NOT NULL,
			title VARCHAR(255) NOT NULL,
			slug VARCHAR(255) NOT NULL,
			summary TEXT NOT NULL,
			body MEDIUMTEXT NOT NULL,
			author VARCHAR(100) NOT NULL,
			published TINYINT(1) NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			UNIQUE KEY uq_blogs_site_slug (site, slug)
		)`,
		`CREATE TABLE IF NOT EXISTS articles (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			site VARCHAR(100) NOT NULL,
			title VARCHAR(255) NOT NULL,
			slug VARCHAR(255) NOT NULL,
			summary TEXT NOT NULL,
			body MEDIUMTEXT NOT NULL,
			author VARCHAR(100) NOT NULL,
			published TINYINT(1) NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			UNIQUE KEY uq_articles_site_slug (site, slug)
		)`,
		`CREATE TABLE IF NOT EXISTS daily_metrics (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			user_id BIGINT NOT NULL,
			metric_date VARCHAR(10) NOT NULL,
			weight_kg DOUBLE NULL,
			calories BIGINT NULL,
			steps BIGINT NULL,
			sleep_hours DOUBLE NULL,
			notes TEXT NOT NULL,
			updated_at DATETIME NOT NULL,
			UNIQUE KEY uq_daily_metrics_user_date (user_id, metric_date)
		)`,
	},
	DriverSQLite: {
		`CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT NOT NULL,
			email TEXT NOT NULL,
			role TEXT NOT NULL,
			site TEXT NOT NULL,
			password_hash TEXT NOT NULL,
			created_at DATETIME NOT NULL,
			UNIQUE (username, site),
			UNIQUE (email, site)
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			order_number TEXT NOT NULL UNIQUE,
			store_id TEXT NOT NULL,
			email TEXT NOT NULL,
			total_price INTEGER NOT NULL,
			currency TEXT NOT NULL,
			shipping_method TEXT NOT NULL,
			shipping_cost INTEGER NOT NULL,
			shipping_address TEXT NOT NULL,
			items TEXT NOT NULL,
			stripe_payment_id TEXT NOT NULL,
			payment_status TEXT NOT NULL,
			order_status TEXT NOT NULL,
			printify_order_id TEXT NULL,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS blogs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			site TEXT NOT NULL,
			title TEXT NOT NULL,
			slug TEXT NOT NULL,
			summary TEXT NOT NULL,
			body TEXT NOT NULL,
			author TEXT NOT NULL,
			published BOOLEAN NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			UNIQUE (site, slug)
		)`,
		`CREATE TABLE IF NOT EXISTS articles (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			site TEXT NOT NULL,
			title TEXT NOT NULL,
			slug TEXT NOT NULL,
			summary TEXT NOT NULL,
			body TEXT NOT NULL,
			author TEXT NOT NULL,
			published BOOLEAN NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			UNIQUE (site, slug)
		)`,
		`CREATE TABLE IF NOT EXISTS daily_metrics (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL,
			metric_date TEXT NOT NULL,
			weight_kg REAL NULL,
			calories INTEGER NULL,
			steps INTEGER NULL,
			sleep_hours REAL NULL,
			notes TEXT NOT NULL,
			updated_at DATETIME NOT NULL,
			UNIQUE (user_id, metric_date)
		)`,
	},
}
