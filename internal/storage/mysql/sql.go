package mysql

const insertAttractionSQL = `
INSERT INTO attractions (id, name, location, entry_fee, rating)
VALUES (?, ?, ?, ?, ?)
`

const getAttractionSQL = `
SELECT id, name, location, entry_fee, rating
FROM attractions
WHERE id = ?
`

const findAttractionByNameSQL = `
SELECT id, name, location, entry_fee, rating
FROM attractions
WHERE name = ?
`

// seq is the insertion-order tie-break for equal ratings.
const topRatedSQL = `
SELECT id, name, location, entry_fee, rating
FROM attractions
ORDER BY rating DESC, seq ASC
LIMIT ?
`

const setRatingSQL = `
UPDATE attractions SET rating = ? WHERE id = ?
`

const attractionExistsSQL = `
SELECT EXISTS(SELECT 1 FROM attractions WHERE id = ?)
`

const insertVisitorSQL = `
INSERT INTO visitors (id, name, email)
VALUES (?, ?, ?)
`

const getVisitorSQL = `
SELECT id, name, email
FROM visitors
WHERE id = ?
`

const findVisitorByEmailSQL = `
SELECT id, name, email
FROM visitors
WHERE email = ?
`

const listVisitorsSQL = `
SELECT id, name, email
FROM visitors
ORDER BY seq
`

const listVisitedSQL = `
SELECT attraction_id
FROM visitor_attractions
WHERE visitor_id = ?
ORDER BY seq
`

const insertVisitedSQL = `
INSERT INTO visitor_attractions (visitor_id, attraction_id)
VALUES (?, ?)
`

const insertReviewSQL = `
INSERT INTO reviews (id, attraction_id, visitor_id, score, comment)
VALUES (?, ?, ?, ?, ?)
`

const reviewExistsSQL = `
SELECT EXISTS(SELECT 1 FROM reviews WHERE attraction_id = ? AND visitor_id = ?)
`

const reviewScoresSQL = `
SELECT score
FROM reviews
WHERE attraction_id = ?
`

const countReviewsByVisitorSQL = `
SELECT COUNT(*)
FROM reviews
WHERE visitor_id = ?
`
