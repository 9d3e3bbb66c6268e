package sqlinline

const QInsertUsageEvent = `--sql f5026973-7beb-4f64-ae72-bc3637d849e2
insert into usage_events(user_id, doubt_id, event_type, success, latency_ms, country)
values ($1::uuid, $2::uuid, $3::text, $4::boolean, $5::int, $6::text)
returning id;
`
