// Package sqlinline holds the SQL statements executed by the repositories.
// Every constant starts with a "--sql <uuid>" marker line that the runner
// strips and logs, so production log lines map back to the exact statement.
package sqlinline

const QUpsertGoogleUser = `--sql e09adc4b-e8ce-4223-b724-573eab7c4e30
insert into users(google_sub, email, name, picture)
values ($1::text, $2::text, $3::text, $4::text)
on conflict (google_sub) do update
set email = excluded.email,
    name = excluded.name,
    picture = excluded.picture,
    updated_at = now()
returning id, google_sub, email, name, picture, role, subscription,
  doubts_used_today, last_doubt_date, created_at, updated_at;
`

const QSelectUserByID = `--sql 9dc97792-c59d-4bc6-a646-aca814ab032f
select id, google_sub, email, name, picture, role, subscription,
  doubts_used_today, last_doubt_date, created_at, updated_at
from users
where id = $1::uuid
limit 1;
`

const QSelectUserByEmail = `--sql f8e73530-89bd-4710-8eb7-56c5f91eff10
select id, google_sub, email, name, picture, role, subscription,
  doubts_used_today, last_doubt_date, created_at, updated_at
from users
where email = $1::text
limit 1;
`

const QUpdateUserSubscription = `--sql a7492d41-c6d4-412e-bb02-51af843bcb00
update users
set subscription = $2::text, updated_at = now()
where id = $1::uuid
returning id, google_sub, email, name, picture, role, subscription,
  doubts_used_today, last_doubt_date, created_at, updated_at;
`

const QUpdateUserRole = `--sql f2c296ab-c69e-4dd3-857d-ccf98a4f3469
update users
set role = $2::text, updated_at = now()
where id = $1::uuid
returning id;
`

const QCommitDoubtUsage = `--sql 1f04db40-33fb-412b-8bba-16976c41f2eb
update users
set doubts_used_today = case
      when last_doubt_date = $2::text then doubts_used_today + 1
      else 1
    end,
    last_doubt_date = $2::text,
    updated_at = now()
where id = $1::uuid
returning doubts_used_today;
`
