package logs

const createPlayTable = `
CREATE TABLE IF NOT EXISTS plays (
  id integer primary key autoincrement,
  run string not null,
  play string not null,
  started integer not null,
  ended integer,
  outcome string
)`

const createPassTable = `
CREATE TABLE IF NOT EXISTS passes (
  run string not null,
  play string not null,
  at integer not null,
  passer_x real, passer_y real,
  receiver_x real, receiver_y real,
  speed real,
  start_time integer,
  rating real
)`

const createSummaryView = `
CREATE VIEW IF NOT EXISTS play_summary (
  play, outcome, runs, mean_duration
) AS
SELECT play, outcome, count(*), avg(ended - started)
 FROM plays
 WHERE ended IS NOT NULL
 GROUP BY play, outcome
`

const insertPlay = `
INSERT INTO plays (run, play, started)
VALUES (:run, :play, :started)
`

const endPlay = `
UPDATE plays SET ended = :ended, outcome = :outcome
 WHERE id = (SELECT max(id) FROM plays WHERE run = :run AND play = :play AND ended IS NULL)
`

const insertPass = `
INSERT INTO passes (run, play, at, passer_x, passer_y, receiver_x, receiver_y, speed, start_time, rating)
VALUES (:run, :play, :at, :passer_x, :passer_y, :receiver_x, :receiver_y, :speed, :start_time, :rating)
`

const selectPlays = `
SELECT run, play, started, ended, outcome FROM plays
 WHERE (? = '' OR play = ?)
 ORDER BY id
`

const selectPasses = `
SELECT run, play, at, passer_x, passer_y, receiver_x, receiver_y, speed, start_time, rating
 FROM passes WHERE run = ? ORDER BY at
`

const selectSummary = `
SELECT play, outcome, runs, mean_duration FROM play_summary ORDER BY play, outcome
`
