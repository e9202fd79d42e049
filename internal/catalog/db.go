package catalog

import (
	"log"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// OpenDB opens the sqlite catalog database, creates the schema and seeds
// the baseline collection if empty. The catalog is read once at startup
// (see Load) and never written again for the life of the process.
func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}
	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}
	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS products(
  id INTEGER PRIMARY KEY,
  name TEXT NOT NULL,
  price_cents INTEGER NOT NULL CHECK (price_cents >= 0),
  image_url TEXT NOT NULL,
  category TEXT NOT NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_products_category ON products(category);
`
	_, err := db.Exec(schema)
	return err
}

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM products`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting Vailure collection")

	tx := db.MustBegin()
	tx.MustExec(`INSERT INTO products(id,name,price_cents,image_url,category) VALUES
	  (1,'Crackle Denim Jacket',18000,'https://picsum.photos/seed/crackle-denim-jacket/800/800?grayscale','Jackets'),
	  (2,'Embroidered Vailure Cap',4500,'https://picsum.photos/seed/vailure-cap-embroidery/800/800?grayscale','Accessories'),
	  (3,'Minimalist Tote Bag',9000,'https://picsum.photos/seed/minimalist-black-tote/800/800?grayscale','Bags'),
	  (4,'Crackle Leather Boots',22000,'https://picsum.photos/seed/crackle-leather-boots/800/800?grayscale','Footwear'),
	  (5,'Crackle Slate Bag',9000,'https://picsum.photos/seed/crackle-slate-bag/800/800?grayscale','Bags'),
	  (6,'Street Utility Tote',9000,'https://picsum.photos/seed/street-utility-tote/800/800?grayscale','Bags')`)
	return tx.Commit()
}
