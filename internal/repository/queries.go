package repository

// Query templates. Every value supplied by a caller is bound as a parameter;
// nothing is ever interpolated into the query text.

const searchMoviesCypher = `
MATCH (movie:Movie)
WHERE toLower(movie.title) CONTAINS toLower($term)
RETURN movie
ORDER BY movie.year DESC, movie.title ASC
`

const movieWithCastCypher = `
MATCH (movie:Movie)
WHERE movie.title = $title
OPTIONAL MATCH (person:Person)-[:ACTED_IN]->(movie)
RETURN movie, collect(person) AS actors
`

const personWithFilmographyCypher = `
MATCH (person:Person)
WHERE person.name = $name
OPTIONAL MATCH (person)-[:ACTED_IN]->(movie:Movie)
RETURN person, collect(movie) AS movies
`

const setMovieStarsCypher = `
MATCH (movie:Movie)
WHERE movie.title = $title
SET movie.stars = $stars
RETURN movie.title AS title
`

const upsertMovieCypher = `
MERGE (movie:Movie {title: $title})
SET movie.year = $year
SET movie.stars = coalesce(movie.stars, $stars)
RETURN movie.title AS title
`

const upsertPersonCypher = `
MERGE (person:Person {name: $name})
RETURN person.name AS name
`

const linkActorCypher = `
MATCH (person:Person {name: $name})
MATCH (movie:Movie {title: $title})
MERGE (person)-[:ACTED_IN]->(movie)
RETURN person.name AS name
`
