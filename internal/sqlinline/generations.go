package sqlinline

const QInsertGenerationEvent = `--sql 3c1f6a2e-58d4-4b7a-9e0c-2f7d8a41b6c5
insert into generation_events(id, session_id, decade, outcome, error_kind, latency_ms, created_at)
values ($1::uuid, $2::text, $3::text, $4::text, nullif($5::text, ''), $6::int, $7::timestamptz);
`

const QGenerationSummary = `--sql a7d2e9b0-4c61-4f38-8b15-6e0a93c2d47f
select decade, outcome, count(*)::bigint as total
from generation_events
group by decade, outcome
order by decade, outcome;
`
